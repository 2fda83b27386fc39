package sync

import (
	"errors"

	"estimate-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for workbook synchronization.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/excel", h.HandleSyncExcel)
	group.Post("/upload", h.HandleSyncUpload)
	group.Get("/archive", h.HandleListArchive)
}

// SyncRequest is the body of a sync request. WorkbookPath is optional and
// only honored when custom paths are enabled.
type SyncRequest struct {
	WorkbookPath string `json:"workbook_path"`
}

// HandleSyncExcel synchronizes the source workbook into the database.
// @Summary Sync workbook
// @Description Replay the configured (or a custom) workbook into the database.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body SyncRequest false "Sync options"
// @Success 200 {object} Result "Sync summary"
// @Failure 400 {object} map[string]string "Rejected request"
// @Failure 404 {object} map[string]string "Workbook not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/excel [post]
func (h *Handler) HandleSyncExcel(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.log, c)

	var req SyncRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	result, err := h.service.SyncPath(c.Context(), req.WorkbookPath)
	if err != nil {
		return h.syncError(c, l, err)
	}
	return c.JSON(result)
}

// HandleSyncUpload accepts a workbook upload and synchronizes it.
// @Summary Upload and sync workbook
// @Description Upload a workbook file and replay it into the database.
// @Tags sync
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook file (.xlsx, .xlsm, .xltx, .xltm)"
// @Success 200 {object} Result "Sync summary"
// @Failure 400 {object} map[string]string "Rejected upload"
// @Failure 413 {object} map[string]string "Upload too large"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/upload [post]
func (h *Handler) HandleSyncUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.log, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing file field",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		l.Error("Failed to open upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read upload",
		})
	}
	defer src.Close()

	result, err := h.service.SyncUpload(c.Context(), fileHeader.Filename, fileHeader.Size, src)
	if err != nil {
		return h.syncError(c, l, err)
	}
	return c.JSON(result)
}

// HandleListArchive lists previously archived workbooks.
// @Summary List archived workbooks
// @Tags sync
// @Produce json
// @Success 200 {array} ArchivedWorkbook "Archived workbooks"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/archive [get]
func (h *Handler) HandleListArchive(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.log, c)

	archived, err := h.service.ListArchived(c.Context())
	if err != nil {
		l.Error("Failed to list archived workbooks", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(archived)
}

// syncError maps service failures onto HTTP statuses. Boundary rejections
// carry their message; store failures stay generic.
func (h *Handler) syncError(c *fiber.Ctx, l *zap.Logger, err error) error {
	switch {
	case errors.Is(err, ErrWorkbookNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrUploadTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrCustomPathDisabled),
		errors.Is(err, ErrPathOutsideBase),
		errors.Is(err, ErrBadExtension),
		errors.Is(err, ErrUploadEmpty):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Workbook sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "sync failed",
		})
	}
}
