package finance

import (
	"context"
	"errors"
	"strings"
	"time"

	"estimate-manager/core/idgen"
	"estimate-manager/core/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrProjectNotFound is returned when a create references an unknown
	// project key.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvoiceNotFound is returned when an invoice key does not resolve.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrPaymentNotFound is returned when a payment key does not resolve.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrDuplicateID is returned when a caller-supplied key already exists.
	ErrDuplicateID = errors.New("id already exists")
)

// InvoiceCreateInput is the payload for creating an invoice. InvoiceID is
// optional; a blank one is allocated from the sequence.
type InvoiceCreateInput struct {
	InvoiceID     string     `json:"invoice_id"`
	ProjectID     string     `json:"project_id"`
	InvoiceAmount float64    `json:"invoice_amount"`
	InvoiceType   *string    `json:"invoice_type"`
	BilledAt      *time.Time `json:"billed_at"`
	PaidAmount    float64    `json:"paid_amount"`
	Status        string     `json:"status"`
	Note          *string    `json:"note"`
}

// InvoiceUpdateInput is a partial invoice update. Nil fields are untouched.
type InvoiceUpdateInput struct {
	InvoiceAmount *float64   `json:"invoice_amount"`
	PaidAmount    *float64   `json:"paid_amount"`
	BilledAt      *time.Time `json:"billed_at"`
	Status        string     `json:"status"`
	Note          *string    `json:"note"`
}

// PaymentCreateInput is the payload for creating a payment. PaymentID is
// optional; a blank one is allocated from the sequence.
type PaymentCreateInput struct {
	PaymentID       string     `json:"payment_id"`
	ProjectID       string     `json:"project_id"`
	VendorID        *string    `json:"vendor_id"`
	VendorName      *string    `json:"vendor_name"`
	WorkDescription *string    `json:"work_description"`
	OrderedAmount   float64    `json:"ordered_amount"`
	PaidAmount      float64    `json:"paid_amount"`
	Status          string     `json:"status"`
	Note            *string    `json:"note"`
	PaidAt          *time.Time `json:"paid_at"`
}

// PaymentUpdateInput is a partial payment update. Nil fields are untouched.
type PaymentUpdateInput struct {
	OrderedAmount   *float64   `json:"ordered_amount"`
	PaidAmount      *float64   `json:"paid_amount"`
	PaidAt          *time.Time `json:"paid_at"`
	Note            *string    `json:"note"`
	VendorName      *string    `json:"vendor_name"`
	WorkDescription *string    `json:"work_description"`
	Status          string     `json:"status"`
}

// Service handles invoice and payment operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new finance service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ListInvoices returns invoices, optionally narrowed to one project.
func (s *Service) ListInvoices(ctx context.Context, projectID string) ([]models.Invoice, error) {
	query := s.db.WithContext(ctx).Model(&models.Invoice{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	var invoices []models.Invoice
	if err := query.Order("invoice_id asc").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// CreateInvoice persists a new invoice against an existing project. The
// remaining amount and, when not supplied, the status are derived.
func (s *Service) CreateInvoice(ctx context.Context, input InvoiceCreateInput) (*models.Invoice, error) {
	var invoice *models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProject(tx, input.ProjectID); err != nil {
			return err
		}

		invoiceID := strings.TrimSpace(input.InvoiceID)
		if invoiceID == "" {
			var existing []string
			if err := tx.Model(&models.Invoice{}).Pluck("invoice_id", &existing).Error; err != nil {
				return err
			}
			invoiceID = idgen.NextID(existing, idgen.InvoicePrefix)
		} else {
			var count int64
			if err := tx.Model(&models.Invoice{}).Where("invoice_id = ?", invoiceID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateID
			}
		}

		billedAt := input.BilledAt
		if billedAt == nil {
			today := time.Now().UTC().Truncate(24 * time.Hour)
			billedAt = &today
		}
		status := input.Status
		if status == "" {
			status = models.DeriveInvoiceStatus(input.InvoiceAmount, input.PaidAmount)
		}

		invoice = &models.Invoice{
			InvoiceID:       invoiceID,
			ProjectID:       input.ProjectID,
			InvoiceAmount:   input.InvoiceAmount,
			InvoiceType:     input.InvoiceType,
			BilledAt:        billedAt,
			PaidAmount:      input.PaidAmount,
			RemainingAmount: models.ClampRemaining(input.InvoiceAmount, input.PaidAmount),
			Status:          status,
			Note:            input.Note,
		}
		return tx.Create(invoice).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.InvoiceID),
		zap.String("project_id", invoice.ProjectID))
	return invoice, nil
}

// UpdateInvoice applies a partial update and re-derives the remaining amount
// and status.
func (s *Service) UpdateInvoice(ctx context.Context, invoiceID string, input InvoiceUpdateInput) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoiceID).First(&invoice).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		if input.InvoiceAmount != nil {
			invoice.InvoiceAmount = *input.InvoiceAmount
		}
		if input.PaidAmount != nil {
			invoice.PaidAmount = *input.PaidAmount
		}
		if input.BilledAt != nil {
			invoice.BilledAt = input.BilledAt
		}
		if input.Note != nil {
			invoice.Note = input.Note
		}

		invoice.RemainingAmount = models.ClampRemaining(invoice.InvoiceAmount, invoice.PaidAmount)
		if input.Status != "" {
			invoice.Status = input.Status
		} else {
			invoice.Status = models.DeriveInvoiceStatus(invoice.InvoiceAmount, invoice.PaidAmount)
		}
		return tx.Save(&invoice).Error
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListPayments returns payments, optionally narrowed to one project.
func (s *Service) ListPayments(ctx context.Context, projectID string) ([]models.Payment, error) {
	query := s.db.WithContext(ctx).Model(&models.Payment{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	var payments []models.Payment
	if err := query.Order("payment_id asc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// CreatePayment persists a new payment against an existing project.
func (s *Service) CreatePayment(ctx context.Context, input PaymentCreateInput) (*models.Payment, error) {
	var payment *models.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProject(tx, input.ProjectID); err != nil {
			return err
		}

		paymentID := strings.TrimSpace(input.PaymentID)
		if paymentID == "" {
			var existing []string
			if err := tx.Model(&models.Payment{}).Pluck("payment_id", &existing).Error; err != nil {
				return err
			}
			paymentID = idgen.NextID(existing, idgen.PaymentPrefix)
		} else {
			var count int64
			if err := tx.Model(&models.Payment{}).Where("payment_id = ?", paymentID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateID
			}
		}

		status := input.Status
		if status == "" {
			status = models.DerivePaymentStatus(input.OrderedAmount, input.PaidAmount)
		}

		payment = &models.Payment{
			PaymentID:       paymentID,
			ProjectID:       input.ProjectID,
			VendorID:        input.VendorID,
			VendorName:      input.VendorName,
			WorkDescription: input.WorkDescription,
			OrderedAmount:   input.OrderedAmount,
			PaidAmount:      input.PaidAmount,
			RemainingAmount: models.ClampRemaining(input.OrderedAmount, input.PaidAmount),
			Status:          &status,
			Note:            input.Note,
			PaidAt:          input.PaidAt,
		}
		return tx.Create(payment).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment created",
		zap.String("payment_id", payment.PaymentID),
		zap.String("project_id", payment.ProjectID))
	return payment, nil
}

// UpdatePayment applies a partial update and re-derives the remaining amount
// and status.
func (s *Service) UpdatePayment(ctx context.Context, paymentID string, input PaymentUpdateInput) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_id = ?", paymentID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if input.OrderedAmount != nil {
			payment.OrderedAmount = *input.OrderedAmount
		}
		if input.PaidAmount != nil {
			payment.PaidAmount = *input.PaidAmount
		}
		if input.PaidAt != nil {
			payment.PaidAt = input.PaidAt
		}
		if input.Note != nil {
			payment.Note = input.Note
		}
		if input.VendorName != nil {
			payment.VendorName = input.VendorName
		}
		if input.WorkDescription != nil {
			payment.WorkDescription = input.WorkDescription
		}

		payment.RemainingAmount = models.ClampRemaining(payment.OrderedAmount, payment.PaidAmount)
		status := input.Status
		if status == "" {
			status = models.DerivePaymentStatus(payment.OrderedAmount, payment.PaidAmount)
		}
		payment.Status = &status
		return tx.Save(&payment).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func requireProject(tx *gorm.DB, projectID string) error {
	var count int64
	if err := tx.Model(&models.Project{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrProjectNotFound
	}
	return nil
}
