package deliveries

import (
	"time"

	"github.com/driveline/driveline-core/internal/app/middlewares"
	"github.com/driveline/driveline-core/internal/app/models"
	"github.com/driveline/driveline-core/internal/app/pkg"
	"github.com/driveline/driveline-core/internal/app/services"
	"github.com/driveline/driveline-core/pkg/rbac"
	"github.com/gofiber/fiber/v2"
)

const auditDateLayout = "2006-01-02"

type AuditHandler struct {
	auditService   *services.AuditService
	authMiddleware *middlewares.AuthMiddleware
}

func NewAuditHandler(auditService *services.AuditService, authMiddleware *middlewares.AuthMiddleware) *AuditHandler {
	return &AuditHandler{auditService: auditService, authMiddleware: authMiddleware}
}

func (h *AuditHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/audit/my", h.authMiddleware.RequireAuth(), h.GetMyActivity)

	router.Get("/admin/security", h.authMiddleware.RequireRoles(rbac.RoleAdmin), h.GetSecurityDashboard)

	adminGroup := router.Group("/admin/audit", h.authMiddleware.RequireRoles(rbac.RoleAdmin))
	adminGroup.Get("/", h.ListLogs)
	adminGroup.Get("/search", h.Search)
	adminGroup.Get("/actions", h.GetActions)
	adminGroup.Get("/security-events", h.GetSecurityEvents)
	adminGroup.Get("/logins", h.GetLoginEvents)
	adminGroup.Get("/admin-actions", h.GetAdminActions)
	adminGroup.Get("/stats", h.GetStats)
	adminGroup.Get("/export", h.ExportCSV)
}

// GetMyActivity lists the caller's own recent trail entries.
func (h *AuditHandler) GetMyActivity(c *fiber.Ctx) error {
	p := middlewares.Principal(c)
	return pkg.SuccessResponse(c, h.auditService.ListForAccount(p.AccountID))
}

func (h *AuditHandler) ListLogs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size")
	return pkg.SuccessResponse(c, h.auditService.ListLogs(page, pageSize))
}

// Search filters the trail by an inclusive date window and an action tag.
// The to-date covers the whole named day.
func (h *AuditHandler) Search(c *fiber.Ctx) error {
	filter := models.AuditFilter{Action: c.Query("action")}

	if raw := c.Query("from_date"); raw != "" {
		if t, err := time.Parse(auditDateLayout, raw); err == nil {
			filter.FromDate = &t
		}
	}
	if raw := c.Query("to_date"); raw != "" {
		if t, err := time.Parse(auditDateLayout, raw); err == nil {
			filter.ToDate = &t
		}
	}

	return pkg.SuccessResponse(c, h.auditService.FilteredSearch(filter))
}

func (h *AuditHandler) GetActions(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, h.auditService.DistinctActions())
}

func (h *AuditHandler) GetSecurityEvents(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, h.auditService.SecurityEvents())
}

func (h *AuditHandler) GetLoginEvents(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, h.auditService.LoginEvents())
}

func (h *AuditHandler) GetAdminActions(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, h.auditService.AdminActions())
}

// GetSecurityDashboard combines the counters with the recent suspicious
// events for the security landing page.
func (h *AuditHandler) GetSecurityDashboard(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, fiber.Map{
		"stats":  h.auditService.SecurityStats(),
		"events": h.auditService.SecurityEvents(),
	})
}

func (h *AuditHandler) GetStats(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, h.auditService.SecurityStats())
}

// ExportCSV streams the recent trail as a CSV attachment.
func (h *AuditHandler) ExportCSV(c *fiber.Ctx) error {
	csv := h.auditService.ExportCSV()

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		`attachment; filename="audit_log_`+time.Now().Format(auditDateLayout)+`.csv"`)

	return c.SendString(csv)
}
