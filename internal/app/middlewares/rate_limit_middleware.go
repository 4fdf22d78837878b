package middlewares

import (
	"fmt"

	"github.com/driveline/driveline-core/internal/app/errors"
	"github.com/driveline/driveline-core/internal/app/pkg"
	"github.com/driveline/driveline-core/pkg/ratelimit"
	"github.com/gofiber/fiber/v2"
)

// RateLimitMiddleware throttles requests keyed by client address.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
}

func NewRateLimitMiddleware(limiter ratelimit.Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// LimitByIP applies the given rate per client address.
func (m *RateLimitMiddleware) LimitByIP(limit ratelimit.Rate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "ip:" + pkg.ClientIP(c)
		allowed, info := m.limiter.Allow(key, limit)

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.Reset.Unix()))

		if !allowed {
			return pkg.ErrorResponse(c,
				errors.NewAppError(fiber.StatusTooManyRequests, "Rate limit exceeded"))
		}
		return c.Next()
	}
}
