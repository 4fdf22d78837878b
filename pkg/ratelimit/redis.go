package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter implements Limiter with a fixed-window counter: one INCR per
// request on a key that expires at the end of the window. Counting is
// approximate at window edges, which is acceptable for throttling logins.
type RedisLimiter struct {
	redis     *redis.Client
	keyPrefix string
}

func NewRedisLimiter(redis *redis.Client, keyPrefix string) *RedisLimiter {
	return &RedisLimiter{redis: redis, keyPrefix: keyPrefix}
}

func (l *RedisLimiter) windowKey(key string, window time.Duration) string {
	// The window index makes every window a fresh counter.
	idx := time.Now().UnixNano() / int64(window)
	return fmt.Sprintf("%s:ratelimit:%s:%d", l.keyPrefix, key, idx)
}

// Allow counts the request against its window. On redis failure it fails
// open: a throttling outage must not take down login.
func (l *RedisLimiter) Allow(key string, limit Rate) (bool, Info) {
	ctx := context.Background()
	now := time.Now()
	windowKey := l.windowKey(key, limit.Window)
	reset := now.Truncate(limit.Window).Add(limit.Window)

	pipe := l.redis.Pipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, limit.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, Info{Limit: limit.Requests, Remaining: 0, Reset: reset}
	}

	count := int(incr.Val())
	remaining := limit.Requests - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= limit.Requests, Info{
		Limit:     limit.Requests,
		Remaining: remaining,
		Reset:     reset,
	}
}
