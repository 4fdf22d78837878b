package injector

import (
	"github.com/driveline/driveline-core/internal/app/deliveries"
	"github.com/driveline/driveline-core/internal/app/middlewares"
	"github.com/driveline/driveline-core/pkg/ratelimit"
	"github.com/gofiber/fiber/v2"
)

// Application is the assembled dependency container.
type Application struct {
	HealthHandler       *deliveries.HealthHandler
	AuthHandler         *deliveries.AuthHandler
	CatalogHandler      *deliveries.CatalogHandler
	OrderHandler        *deliveries.OrderHandler
	AdminHandler        *deliveries.AdminHandler
	AuditHandler        *deliveries.AuditHandler
	AuthMiddleware      *middlewares.AuthMiddleware
	RateLimitMiddleware *middlewares.RateLimitMiddleware
}

// RegisterRoutes wires all application routes onto a Fiber router.
func (app *Application) RegisterRoutes(router fiber.Router) {
	// Every request resolves its principal once, then the route gates decide.
	router.Use(app.AuthMiddleware.WithPrincipal)

	// Global rate limit for the public surface; the auth group applies its
	// own stricter limit on top.
	router.Use(app.RateLimitMiddleware.LimitByIP(ratelimit.PublicLimit))

	app.HealthHandler.RegisterRoutes(router)
	app.AuthHandler.RegisterRoutes(router)
	app.CatalogHandler.RegisterRoutes(router)
	app.OrderHandler.RegisterRoutes(router)
	app.AdminHandler.RegisterRoutes(router)
	app.AuditHandler.RegisterRoutes(router)
}
