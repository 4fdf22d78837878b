package deliveries

import (
	"github.com/driveline/driveline-core/internal/app/errors"
	"github.com/driveline/driveline-core/internal/app/middlewares"
	"github.com/driveline/driveline-core/internal/app/models"
	"github.com/driveline/driveline-core/internal/app/pkg"
	"github.com/driveline/driveline-core/internal/app/services"
	"github.com/driveline/driveline-core/pkg/rbac"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the back-office surface. User, catalog and dashboard
// management requires the ADMIN role; order management is open to MANAGER
// as well.
type AdminHandler struct {
	accountService *services.AccountService
	carService     *services.CarService
	orderService   *services.OrderService
	statsService   *services.StatsService
	authMiddleware *middlewares.AuthMiddleware
}

func NewAdminHandler(
	accountService *services.AccountService,
	carService *services.CarService,
	orderService *services.OrderService,
	statsService *services.StatsService,
	authMiddleware *middlewares.AuthMiddleware,
) *AdminHandler {
	return &AdminHandler{
		accountService: accountService,
		carService:     carService,
		orderService:   orderService,
		statsService:   statsService,
		authMiddleware: authMiddleware,
	}
}

func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminGroup := router.Group("/admin", h.authMiddleware.RequireRoles(rbac.RoleAdmin))

	adminGroup.Get("/dashboard", h.GetDashboard)

	adminGroup.Get("/users", h.ListUsers)
	adminGroup.Get("/users/:id", h.GetUser)
	adminGroup.Put("/users/:id/role", h.ChangeUserRole)
	adminGroup.Delete("/users/:id", h.DeleteUser)

	adminGroup.Post("/products", h.CreateProduct)
	adminGroup.Put("/products/:id", h.UpdateProduct)
	adminGroup.Patch("/products/:id/status", h.UpdateProductStatus)
	adminGroup.Delete("/products/:id", h.DeleteProduct)

	orderGroup := router.Group("/admin/orders",
		h.authMiddleware.RequireRoles(rbac.RoleAdmin, rbac.RoleManager))
	orderGroup.Get("/", h.ListOrders)
	orderGroup.Patch("/:id/status", h.UpdateOrderStatus)
}

func (h *AdminHandler) GetDashboard(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, h.statsService.Dashboard())
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, h.accountService.ListUsers())
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid account id"))
	}

	user, err := h.accountService.UserDetail(int64(id))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, user)
}

func (h *AdminHandler) ChangeUserRole(c *fiber.Ctx) error {
	p := middlewares.Principal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid account id"))
	}

	var req models.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	if err := h.accountService.ChangeRole(p, pkg.ClientIP(c), int64(id), &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessMessageResponse(c, "Role updated")
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	p := middlewares.Principal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid account id"))
	}

	if err := h.accountService.DeleteUser(p, pkg.ClientIP(c), int64(id)); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessMessageResponse(c, "User deleted")
}

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	p := middlewares.Principal(c)

	var req models.CarCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	car, err := h.carService.Create(p, pkg.ClientIP(c), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, car)
}

func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	p := middlewares.Principal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid car id"))
	}

	var req models.CarUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	if err := h.carService.Update(p, pkg.ClientIP(c), int64(id), &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessMessageResponse(c, "Product updated")
}

func (h *AdminHandler) UpdateProductStatus(c *fiber.Ctx) error {
	p := middlewares.Principal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid car id"))
	}

	var req models.CarStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	if err := h.carService.UpdateStatus(p, pkg.ClientIP(c), int64(id), &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessMessageResponse(c, "Product status updated")
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	p := middlewares.Principal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid car id"))
	}

	if err := h.carService.Delete(p, pkg.ClientIP(c), int64(id)); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessMessageResponse(c, "Product deleted")
}

func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, h.orderService.AllOrders())
}

func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	p := middlewares.Principal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid order id"))
	}

	var req models.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	if err := h.orderService.UpdateStatus(p, pkg.ClientIP(c), int64(id), req.Status); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessMessageResponse(c, "Order status updated")
}
