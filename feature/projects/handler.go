package projects

import (
	"errors"

	"estimate-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for projects.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the project routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/projects")
	group.Post("", h.HandleCreateProject)
	group.Get("", h.HandleListProjects)
	group.Get("/:project_id", h.HandleGetProject)
}

// HandleCreateProject creates a project with a server-allocated key.
// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body CreateInput true "Project"
// @Success 201 {object} models.Project "Created project"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 422 {object} map[string]string "Missing project name"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /projects [post]
func (h *Handler) HandleCreateProject(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	project, err := h.service.CreateProject(c.Context(), input)
	switch {
	case errors.Is(err, ErrCustomerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNameRequired):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Failed to create project", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// HandleListProjects returns projects matching the query filters.
// @Summary List projects
// @Tags projects
// @Produce json
// @Param status query string false "Project status filter"
// @Param customer_id query string false "Customer filter"
// @Param offset query int false "Page offset"
// @Param limit query int false "Page size (max 500)"
// @Success 200 {object} ListResult "Projects"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /projects [get]
func (h *Handler) HandleListProjects(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	filter := ListFilter{
		Status:     c.Query("status"),
		CustomerID: c.Query("customer_id"),
		Offset:     c.QueryInt("offset", 0),
		Limit:      c.QueryInt("limit", 100),
	}

	result, err := h.service.ListProjects(c.Context(), filter)
	if err != nil {
		l.Error("Failed to list projects", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleGetProject returns one project by its business key.
// @Summary Get project
// @Tags projects
// @Produce json
// @Param project_id path string true "Project key (e.g. 'P-003')"
// @Success 200 {object} models.Project "Project"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /projects/{project_id} [get]
func (h *Handler) HandleGetProject(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	project, err := h.service.GetProject(c.Context(), c.Params("project_id"))
	switch {
	case errors.Is(err, ErrProjectNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Failed to get project", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(project)
}
