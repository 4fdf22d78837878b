//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/driveline/driveline-core/internal/app/deliveries"
	"github.com/driveline/driveline-core/internal/app/middlewares"
	"github.com/driveline/driveline-core/internal/app/services"
	"github.com/driveline/driveline-core/internal/infrastructures"
	"github.com/driveline/driveline-core/pkg/ratelimit"
	"github.com/google/wire"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	wire.Value("driveline"),
	wire.Bind(new(ratelimit.Limiter), new(*ratelimit.RedisLimiter)),
	ratelimit.NewRedisLimiter,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewSessionService,
	services.NewAuditService,
	services.NewAuthService,
	services.NewAccountService,
	services.NewCarService,
	services.NewOrderService,
	services.NewStatsService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	wire.Bind(new(middlewares.AuditRecorder), new(*services.AuditService)),
	middlewares.NewAuthMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewAuthHandler,
	deliveries.NewCatalogHandler,
	deliveries.NewOrderHandler,
	deliveries.NewAdminHandler,
	deliveries.NewAuditHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}
