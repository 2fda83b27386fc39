package finance

import (
	"context"
	"testing"

	"estimate-manager/core/database"
	"estimate-manager/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedProject(t *testing.T, db *gorm.DB, projectID string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Project{
		ProjectID:        projectID,
		ProjectSheetName: projectID + "_案件",
		CustomerID:       "C-001",
		CustomerName:     "顧客",
		ProjectName:      "案件",
		OwnerName:        models.DefaultOwnerName,
		TargetMarginRate: models.DefaultMarginRate,
		ProjectStatus:    models.DefaultProjectStatus,
	}).Error)
}

func TestCreateInvoice(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "P-001")
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	invoice, err := svc.CreateInvoice(ctx, InvoiceCreateInput{
		ProjectID:     "P-001",
		InvoiceAmount: 500000,
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-001", invoice.InvoiceID)
	assert.Equal(t, 500000.0, invoice.RemainingAmount)
	assert.Equal(t, models.InvoiceStatusUnpaid, invoice.Status)
	assert.NotNil(t, invoice.BilledAt)

	// Next allocation continues the sequence.
	second, err := svc.CreateInvoice(ctx, InvoiceCreateInput{ProjectID: "P-001", InvoiceAmount: 1000})
	require.NoError(t, err)
	assert.Equal(t, "INV-002", second.InvoiceID)
}

func TestCreateInvoiceRejections(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "P-001")
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateInvoice(ctx, InvoiceCreateInput{ProjectID: "P-404", InvoiceAmount: 100})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.CreateInvoice(ctx, InvoiceCreateInput{InvoiceID: "INV-010", ProjectID: "P-001", InvoiceAmount: 100})
	require.NoError(t, err)
	_, err = svc.CreateInvoice(ctx, InvoiceCreateInput{InvoiceID: "INV-010", ProjectID: "P-001", InvoiceAmount: 200})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestUpdateInvoiceDerivesStatus(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "P-001")
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	invoice, err := svc.CreateInvoice(ctx, InvoiceCreateInput{ProjectID: "P-001", InvoiceAmount: 100000})
	require.NoError(t, err)

	paid := 40000.0
	updated, err := svc.UpdateInvoice(ctx, invoice.InvoiceID, InvoiceUpdateInput{PaidAmount: &paid})
	require.NoError(t, err)
	assert.Equal(t, 60000.0, updated.RemainingAmount)
	assert.Equal(t, models.InvoiceStatusPartial, updated.Status)

	// Overpayment clamps at zero and reads as settled.
	paid = 150000
	updated, err = svc.UpdateInvoice(ctx, invoice.InvoiceID, InvoiceUpdateInput{PaidAmount: &paid})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.RemainingAmount)
	assert.Equal(t, models.InvoiceStatusPaid, updated.Status)

	_, err = svc.UpdateInvoice(ctx, "INV-404", InvoiceUpdateInput{})
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestListInvoicesByProject(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "P-001")
	seedProject(t, db, "P-002")
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateInvoice(ctx, InvoiceCreateInput{ProjectID: "P-001", InvoiceAmount: 100})
	require.NoError(t, err)
	_, err = svc.CreateInvoice(ctx, InvoiceCreateInput{ProjectID: "P-002", InvoiceAmount: 200})
	require.NoError(t, err)

	all, err := svc.ListInvoices(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.ListInvoices(ctx, "P-002")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, 200.0, scoped[0].InvoiceAmount)
}

func TestCreatePayment(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "P-001")
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	vendor := "協力会社A"
	payment, err := svc.CreatePayment(ctx, PaymentCreateInput{
		ProjectID:     "P-001",
		VendorName:    &vendor,
		OrderedAmount: 200000,
		PaidAmount:    50000,
	})
	require.NoError(t, err)

	assert.Equal(t, "PAY-001", payment.PaymentID)
	assert.Equal(t, 150000.0, payment.RemainingAmount)
	if assert.NotNil(t, payment.Status) {
		assert.Equal(t, models.PaymentStatusPartial, *payment.Status)
	}

	_, err = svc.CreatePayment(ctx, PaymentCreateInput{PaymentID: "PAY-001", ProjectID: "P-001"})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestUpdatePayment(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "P-001")
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	payment, err := svc.CreatePayment(ctx, PaymentCreateInput{ProjectID: "P-001", OrderedAmount: 100000})
	require.NoError(t, err)

	paid := 100000.0
	updated, err := svc.UpdatePayment(ctx, payment.PaymentID, PaymentUpdateInput{PaidAmount: &paid})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.RemainingAmount)
	if assert.NotNil(t, updated.Status) {
		assert.Equal(t, models.PaymentStatusPaid, *updated.Status)
	}

	_, err = svc.UpdatePayment(ctx, "PAY-404", PaymentUpdateInput{})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
