package deliveries

import (
	"github.com/driveline/driveline-core/internal/app/errors"
	"github.com/driveline/driveline-core/internal/app/middlewares"
	"github.com/driveline/driveline-core/internal/app/models"
	"github.com/driveline/driveline-core/internal/app/pkg"
	"github.com/driveline/driveline-core/internal/app/services"
	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orderService   *services.OrderService
	authMiddleware *middlewares.AuthMiddleware
}

func NewOrderHandler(orderService *services.OrderService, authMiddleware *middlewares.AuthMiddleware) *OrderHandler {
	return &OrderHandler{orderService: orderService, authMiddleware: authMiddleware}
}

func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderGroup := router.Group("/orders", h.authMiddleware.RequireAuth())

	orderGroup.Post("/", h.CreateOrder)
	orderGroup.Get("/my", h.GetMyOrders)
	orderGroup.Get("/:id", h.GetOrder)
	orderGroup.Post("/:id/cancel", h.CancelOrder)
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	p := middlewares.Principal(c)

	var req models.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.orderService.Create(p, pkg.ClientIP(c), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, result)
}

func (h *OrderHandler) GetMyOrders(c *fiber.Ctx) error {
	p := middlewares.Principal(c)
	return pkg.SuccessResponse(c, h.orderService.MyOrders(p.AccountID))
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	p := middlewares.Principal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid order id"))
	}

	detail, err := h.orderService.Detail(p, int64(id))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, detail)
}

func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	p := middlewares.Principal(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid order id"))
	}

	if err := h.orderService.Cancel(p, pkg.ClientIP(c), int64(id)); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessMessageResponse(c, "Order cancelled")
}
