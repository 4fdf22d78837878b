package deliveries

import (
	"github.com/driveline/driveline-core/internal/app/errors"
	"github.com/driveline/driveline-core/internal/app/models"
	"github.com/driveline/driveline-core/internal/app/pkg"
	"github.com/driveline/driveline-core/internal/app/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	carService *services.CarService
}

func NewCatalogHandler(carService *services.CarService) *CatalogHandler {
	return &CatalogHandler{carService: carService}
}

func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/cars", h.SearchCars)
	router.Get("/cars/:id", h.GetCar)
	router.Get("/brands", h.GetBrands)
}

func (h *CatalogHandler) SearchCars(c *fiber.Ctx) error {
	filter := models.CarSearchFilter{
		Search:   c.Query("search"),
		Brand:    c.Query("brand"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size"),
	}

	if raw := c.Query("min_price"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			filter.MaxPrice = &v
		}
	}
	if year := c.QueryInt("year"); year > 0 {
		y := int16(year)
		filter.Year = &y
	}

	return pkg.SuccessResponse(c, h.carService.Search(filter))
}

func (h *CatalogHandler) GetCar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid car id"))
	}

	detail, err := h.carService.Detail(int64(id))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, detail)
}

func (h *CatalogHandler) GetBrands(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, h.carService.Brands())
}
