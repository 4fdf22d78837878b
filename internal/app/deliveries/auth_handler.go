package deliveries

import (
	"time"

	"github.com/driveline/driveline-core/internal/app/middlewares"
	"github.com/driveline/driveline-core/internal/app/models"
	"github.com/driveline/driveline-core/internal/app/pkg"
	"github.com/driveline/driveline-core/internal/app/services"
	"github.com/driveline/driveline-core/pkg/ratelimit"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService         *services.AuthService
	accountService      *services.AccountService
	sessionService      *services.SessionService
	authMiddleware      *middlewares.AuthMiddleware
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewAuthHandler(
	authService *services.AuthService,
	accountService *services.AccountService,
	sessionService *services.SessionService,
	authMiddleware *middlewares.AuthMiddleware,
	rateLimitMiddleware *middlewares.RateLimitMiddleware,
) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		accountService:      accountService,
		sessionService:      sessionService,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authGroup := router.Group("/auth")

	authGroup.Post("/register", h.rateLimitMiddleware.LimitByIP(ratelimit.AuthLimit), h.Register)
	authGroup.Post("/login", h.rateLimitMiddleware.LimitByIP(ratelimit.AuthLimit), h.Login)
	authGroup.Post("/logout", h.authMiddleware.RequireAuth(), h.Logout)
	authGroup.Get("/me", h.authMiddleware.RequireAuth(), h.GetMe)
	authGroup.Patch("/me", h.authMiddleware.RequireAuth(), h.UpdateMe)
	authGroup.Post("/change-password", h.authMiddleware.RequireAuth(), h.ChangePassword)

	// Redirect targets for the role gates.
	router.Get(middlewares.LoginPath, h.LoginRequired)
	router.Get(middlewares.AccessDeniedPath, h.AccessDenied)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	accountID, err := h.authService.Register(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, fiber.Map{"account_id": accountID})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	token, principal, err := h.authService.Login(&req, pkg.ClientIP(c))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.sessionService.TTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return pkg.SuccessResponse(c, principal)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	p := middlewares.Principal(c)
	token := c.Cookies(middlewares.SessionCookie)

	if err := h.authService.Logout(p, token, pkg.ClientIP(c)); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})

	return pkg.SuccessMessageResponse(c, "Signed out")
}

func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	p := middlewares.Principal(c)

	account, err := h.accountService.Get(p.AccountID)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, fiber.Map{
		"principal": p,
		"profile":   account,
	})
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	p := middlewares.Principal(c)

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	if err := h.accountService.UpdateProfile(p, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessMessageResponse(c, "Profile updated")
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	p := middlewares.Principal(c)

	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	if err := h.authService.ChangePassword(p, &req, pkg.ClientIP(c)); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessMessageResponse(c, "Password changed")
}

func (h *AuthHandler) LoginRequired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.WebResponse[any]{
		Success: false,
		Message: "Sign in required",
	})
}

func (h *AuthHandler) AccessDenied(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(models.WebResponse[any]{
		Success: false,
		Message: "You do not have permission to access this resource",
	})
}
