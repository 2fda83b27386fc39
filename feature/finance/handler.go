package finance

import (
	"errors"

	"estimate-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for invoices and payments.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the finance routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/invoices", h.HandleListInvoices)
	app.Post("/invoices", h.HandleCreateInvoice)
	app.Patch("/invoices/:invoice_id", h.HandleUpdateInvoice)
	app.Get("/payments", h.HandleListPayments)
	app.Post("/payments", h.HandleCreatePayment)
	app.Patch("/payments/:payment_id", h.HandleUpdatePayment)
}

// HandleListInvoices returns invoices, optionally filtered by project.
// @Summary List invoices
// @Tags finance
// @Produce json
// @Param project_id query string false "Project filter"
// @Success 200 {array} models.Invoice "Invoices"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /invoices [get]
func (h *Handler) HandleListInvoices(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	invoices, err := h.service.ListInvoices(c.Context(), c.Query("project_id"))
	if err != nil {
		l.Error("Failed to list invoices", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(invoices)
}

// HandleCreateInvoice creates an invoice against an existing project.
// @Summary Create invoice
// @Tags finance
// @Accept json
// @Produce json
// @Param request body InvoiceCreateInput true "Invoice"
// @Success 201 {object} models.Invoice "Created invoice"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 409 {object} map[string]string "Invoice ID already exists"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /invoices [post]
func (h *Handler) HandleCreateInvoice(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input InvoiceCreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	invoice, err := h.service.CreateInvoice(c.Context(), input)
	if err != nil {
		return h.financeError(c, l, err, "Failed to create invoice")
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// HandleUpdateInvoice applies a partial update to an invoice.
// @Summary Update invoice
// @Tags finance
// @Accept json
// @Produce json
// @Param invoice_id path string true "Invoice key"
// @Param request body InvoiceUpdateInput true "Fields to update"
// @Success 200 {object} models.Invoice "Updated invoice"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /invoices/{invoice_id} [patch]
func (h *Handler) HandleUpdateInvoice(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input InvoiceUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	invoice, err := h.service.UpdateInvoice(c.Context(), c.Params("invoice_id"), input)
	if err != nil {
		return h.financeError(c, l, err, "Failed to update invoice")
	}
	return c.JSON(invoice)
}

// HandleListPayments returns payments, optionally filtered by project.
// @Summary List payments
// @Tags finance
// @Produce json
// @Param project_id query string false "Project filter"
// @Success 200 {array} models.Payment "Payments"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /payments [get]
func (h *Handler) HandleListPayments(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	payments, err := h.service.ListPayments(c.Context(), c.Query("project_id"))
	if err != nil {
		l.Error("Failed to list payments", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(payments)
}

// HandleCreatePayment creates a payment against an existing project.
// @Summary Create payment
// @Tags finance
// @Accept json
// @Produce json
// @Param request body PaymentCreateInput true "Payment"
// @Success 201 {object} models.Payment "Created payment"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 409 {object} map[string]string "Payment ID already exists"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /payments [post]
func (h *Handler) HandleCreatePayment(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input PaymentCreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	payment, err := h.service.CreatePayment(c.Context(), input)
	if err != nil {
		return h.financeError(c, l, err, "Failed to create payment")
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// HandleUpdatePayment applies a partial update to a payment.
// @Summary Update payment
// @Tags finance
// @Accept json
// @Produce json
// @Param payment_id path string true "Payment key"
// @Param request body PaymentUpdateInput true "Fields to update"
// @Success 200 {object} models.Payment "Updated payment"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /payments/{payment_id} [patch]
func (h *Handler) HandleUpdatePayment(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input PaymentUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	payment, err := h.service.UpdatePayment(c.Context(), c.Params("payment_id"), input)
	if err != nil {
		return h.financeError(c, l, err, "Failed to update payment")
	}
	return c.JSON(payment)
}

func (h *Handler) financeError(c *fiber.Ctx, l *zap.Logger, err error, msg string) error {
	switch {
	case errors.Is(err, ErrProjectNotFound),
		errors.Is(err, ErrInvoiceNotFound),
		errors.Is(err, ErrPaymentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrDuplicateID):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error(msg, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
