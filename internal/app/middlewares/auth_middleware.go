package middlewares

import (
	"github.com/driveline/driveline-core/internal/app/models"
	"github.com/driveline/driveline-core/internal/app/pkg"
	"github.com/driveline/driveline-core/internal/app/services"
	"github.com/driveline/driveline-core/pkg/rbac"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// SessionCookie carries the opaque session token.
const SessionCookie = "dl_session"

// Redirect targets for denied requests.
const (
	LoginPath        = "/login"
	AccessDeniedPath = "/access-denied"
)

const principalKey = "principal"

// AuditRecorder is the sink for denied-access events. Writes are
// best-effort; implementations swallow their own failures.
type AuditRecorder interface {
	Record(accountID *int64, action, targetTable, sourceIP string)
}

// AuthMiddleware resolves the session principal and gates routes on the
// role policy in pkg/rbac.
type AuthMiddleware struct {
	sessions *services.SessionService
	audit    AuditRecorder
}

func NewAuthMiddleware(sessions *services.SessionService, audit AuditRecorder) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, audit: audit}
}

// WithPrincipal resolves the caller once per request and threads the
// principal through locals. Session-store failures resolve to anonymous
// rather than failing the request.
func (m *AuthMiddleware) WithPrincipal(c *fiber.Ctx) error {
	p, err := m.sessions.Resolve(c.Cookies(SessionCookie))
	if err != nil {
		logrus.WithError(err).Warn("session resolution failed; treating caller as anonymous")
		p = nil
	}
	if p != nil {
		c.Locals(principalKey, p)
	}
	return c.Next()
}

// Principal returns the resolved principal for the request, nil when
// anonymous.
func Principal(c *fiber.Ctx) *rbac.Principal {
	p, _ := c.Locals(principalKey).(*rbac.Principal)
	return p
}

// RequireRoles gates a route on the required role set. An empty set admits
// any authenticated principal. Unauthenticated callers are redirected to
// the login entry point; forbidden callers are redirected to the
// access-denied page after an asynchronous best-effort ACCESS_DENIED audit
// write carrying the requested path and caller address.
func (m *AuthMiddleware) RequireRoles(required ...rbac.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := Principal(c)

		switch rbac.Authorize(p, required...) {
		case rbac.Allow:
			return c.Next()
		case rbac.DenyUnauthenticated:
			return c.Redirect(LoginPath, fiber.StatusFound)
		default:
			// Values are captured before the goroutine: the fiber context
			// is recycled once the handler returns.
			accountID := p.AccountID
			path := c.OriginalURL()
			ip := pkg.ClientIP(c)
			go m.audit.Record(&accountID,
				models.AuditActionAccessDenied+": "+path,
				models.AuditTargetAccessDenied, ip)

			return c.Redirect(AccessDeniedPath, fiber.StatusFound)
		}
	}
}

// RequireAuth admits any authenticated principal.
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return m.RequireRoles()
}
