package pkg

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientIP resolves the caller's network address, preferring proxy headers
// when present.
func ClientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xrip := c.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	return c.IP()
}
