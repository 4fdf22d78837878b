package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/driveline/driveline-core/internal/app/errors"
	"github.com/driveline/driveline-core/internal/infrastructures"
	"github.com/driveline/driveline-core/pkg/rbac"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "driveline:session:"
	defaultSessionTTL = 24 * time.Hour
)

// SessionService is the server-side session store. The principal written at
// login time is the only identity source on the request hot path; no
// database lookup happens here.
type SessionService struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSessionService(redis *redis.Client) *SessionService {
	ttl := defaultSessionTTL
	if infrastructures.Config != nil && infrastructures.Config.SESSION_TTL != "" {
		if parsed, err := time.ParseDuration(infrastructures.Config.SESSION_TTL); err == nil {
			ttl = parsed
		}
	}
	return &SessionService{redis: redis, ttl: ttl}
}

// TTL is the configured session lifetime; cookies mirror it.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// Create stores the principal under a fresh opaque token and returns it.
func (s *SessionService) Create(p *rbac.Principal) (string, error) {
	token := uuid.NewString()
	ctx := context.Background()

	key := sessionKey(token)
	pipe := s.redis.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"account_id":   strconv.FormatInt(p.AccountID, 10),
		"display_name": p.DisplayName,
		"role":         p.Role,
	})
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", errors.NewInternalServerError(err, "Failed to create session")
	}

	return token, nil
}

// Resolve maps a session token to its principal. A missing or expired
// session resolves to the anonymous principal (nil) without error; gates
// downstream decide what anonymity means for the route.
func (s *SessionService) Resolve(token string) (*rbac.Principal, error) {
	if token == "" {
		return nil, nil
	}

	fields, err := s.redis.HGetAll(context.Background(), sessionKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	accountID, err := strconv.ParseInt(fields["account_id"], 10, 64)
	if err != nil || accountID == 0 {
		return nil, nil
	}

	role := fields["role"]
	if role == "" {
		role = string(rbac.DefaultRole)
	}

	return &rbac.Principal{
		AccountID:   accountID,
		DisplayName: fields["display_name"],
		Role:        role,
	}, nil
}

// Destroy removes the session; resolving the token afterwards is anonymous.
func (s *SessionService) Destroy(token string) error {
	if token == "" {
		return nil
	}
	return s.redis.Del(context.Background(), sessionKey(token)).Err()
}
