package customers

import (
	"estimate-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for customers.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the customer routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/customers")
	group.Get("", h.HandleListCustomers)
}

// HandleListCustomers returns every customer.
// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {array} models.Customer "Customers"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /customers [get]
func (h *Handler) HandleListCustomers(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	customers, err := h.service.ListCustomers(c.Context())
	if err != nil {
		l.Error("Failed to list customers", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(customers)
}
