package dashboard

import (
	"estimate-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for dashboard aggregations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the dashboard routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/dashboard")
	group.Get("/summary", h.HandleGetSummary)
	group.Get("/overview", h.HandleGetOverview)
}

// HandleGetSummary returns store-wide totals per entity kind.
// @Summary Dashboard summary
// @Tags dashboard
// @Produce json
// @Success 200 {object} Summary "Totals"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /dashboard/summary [get]
func (h *Handler) HandleGetSummary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.GetSummary(c.Context())
	if err != nil {
		l.Error("Failed to compute dashboard summary", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}

// HandleGetOverview returns the sales overview.
// @Summary Dashboard overview
// @Tags dashboard
// @Produce json
// @Success 200 {object} Overview "Sales overview"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /dashboard/overview [get]
func (h *Handler) HandleGetOverview(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	overview, err := h.service.GetOverview(c.Context())
	if err != nil {
		l.Error("Failed to compute dashboard overview", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(overview)
}
