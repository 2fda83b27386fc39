package workitems

import (
	"errors"

	"estimate-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the work item catalog and project items.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the work item routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/work-items", h.HandleListMasters)
	app.Get("/projects/:project_id/items", h.HandleListProjectItems)
	app.Post("/projects/:project_id/items", h.HandleCreateProjectItem)
}

// HandleListMasters returns catalog entries matching the query filters.
// @Summary List work item catalog
// @Tags work-items
// @Produce json
// @Param category query string false "Category filter"
// @Param q query string false "Item name substring"
// @Param limit query int false "Page size (max 500)"
// @Success 200 {array} models.WorkItemMaster "Catalog entries"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /work-items [get]
func (h *Handler) HandleListMasters(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	masters, err := h.service.ListMasters(c.Context(), MasterFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Limit:    c.QueryInt("limit", 100),
	})
	if err != nil {
		l.Error("Failed to list work items", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(masters)
}

// HandleListProjectItems returns the line items of one project.
// @Summary List project items
// @Tags work-items
// @Produce json
// @Param project_id path string true "Project key"
// @Success 200 {array} models.ProjectItem "Line items"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /projects/{project_id}/items [get]
func (h *Handler) HandleListProjectItems(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	items, err := h.service.ListProjectItems(c.Context(), c.Params("project_id"))
	switch {
	case errors.Is(err, ErrProjectNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Failed to list project items", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(items)
}

// HandleCreateProjectItem adds a line item to a project.
// @Summary Create project item
// @Tags work-items
// @Accept json
// @Produce json
// @Param project_id path string true "Project key"
// @Param request body ItemCreateInput true "Line item"
// @Success 201 {object} models.ProjectItem "Created line item"
// @Failure 404 {object} map[string]string "Project or master not found"
// @Failure 422 {object} map[string]string "Incomplete or out-of-range line item"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /projects/{project_id}/items [post]
func (h *Handler) HandleCreateProjectItem(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input ItemCreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	item, err := h.service.CreateProjectItem(c.Context(), c.Params("project_id"), input)
	switch {
	case errors.Is(err, ErrProjectNotFound), errors.Is(err, ErrMasterNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrItemIncomplete), errors.Is(err, ErrAmountOutOfRange):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Failed to create project item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}
