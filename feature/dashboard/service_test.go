package dashboard

import (
	"context"
	"testing"
	"time"

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

func seedProject(t *testing.T, db *gorm.DB, projectID, status string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Project{
		ProjectID:        projectID,
		ProjectSheetName: projectID + "_案件",
		CustomerID:       "C-001",
		CustomerName:     "顧客",
		ProjectName:      "案件" + projectID,
		OwnerName:        models.DefaultOwnerName,
		TargetMarginRate: models.DefaultMarginRate,
		ProjectStatus:    status,
	}).Error)
}

func seedInvoice(t *testing.T, db *gorm.DB, invoiceID, projectID string, amount, paid float64, billedAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Invoice{
		InvoiceID:       invoiceID,
		ProjectID:       projectID,
		InvoiceAmount:   amount,
		PaidAmount:      paid,
		RemainingAmount: models.ClampRemaining(amount, paid),
		Status:          models.DeriveInvoiceStatus(amount, paid),
		BilledAt:        &billedAt,
	}).Error)
}

func TestGetSummary(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "P-001", "①リード")
	seedProject(t, db, "P-002", "①リード")
	seedProject(t, db, "P-003", "⑤完工")
	seedInvoice(t, db, "INV-001", "P-001", 500000, 200000, time.Now().UTC())
	require.NoError(t, db.Create(&models.Payment{
		PaymentID:       "PAY-001",
		ProjectID:       "P-001",
		OrderedAmount:   200000,
		PaidAmount:      50000,
		RemainingAmount: 150000,
	}).Error)
	require.NoError(t, db.Create(&models.ProjectItem{
		ProjectID: "P-001",
		Category:  "基礎工事",
		ItemName:  "掘削",
		Quantity:  10,
		UnitPrice: 4500,
		LineTotal: 45000,
	}).Error)

	svc := NewService(db, zap.NewNop())
	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.ProjectTotal)
	assert.Equal(t, map[string]int{"①リード": 2, "⑤完工": 1}, summary.ProjectStatusCounts)
	assert.Equal(t, 500000.0, summary.InvoiceTotalAmount)
	assert.Equal(t, 300000.0, summary.InvoiceRemainingAmount)
	assert.Equal(t, 200000.0, summary.PaymentTotalAmount)
	assert.Equal(t, 150000.0, summary.PaymentRemainingAmount)
	assert.Equal(t, 45000.0, summary.ItemTotalAmount)
}

func TestGetOverview(t *testing.T) {
	db := newTestDB(t)
	seedProject(t, db, "P-001", "③施工中")
	seedProject(t, db, "P-002", "⑤完工")
	seedProject(t, db, "P-003", "⑥失注")

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	seedInvoice(t, db, "INV-001", "P-001", 300000, 0, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	seedInvoice(t, db, "INV-002", "P-001", 200000, 200000, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	seedInvoice(t, db, "INV-003", "P-002", 100000, 0, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	// Future-dated within the year: in the monthly series, not in YTD.
	seedInvoice(t, db, "INV-004", "P-002", 50000, 0, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))

	svc := NewService(db, zap.NewNop())
	overview, err := svc.overviewAt(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 300000.0, overview.CurrentMonthSales)
	assert.Equal(t, 500000.0, overview.YTDSales)
	assert.Equal(t, 650000.0, overview.AllTimeSales)
	assert.Equal(t, 100000.0, overview.LastYearYTDSales)
	assert.Equal(t, 400.0, overview.YoYGrowthRate)
	assert.Equal(t, 450000.0, overview.ReceivableBalance)

	// Completed and lost projects are excluded.
	assert.Equal(t, 1, overview.ActiveProjectCount)
	require.Len(t, overview.ActiveProjects, 1)
	active := overview.ActiveProjects[0]
	assert.Equal(t, "P-001", active.ProjectID)
	assert.Equal(t, 500000.0, active.InvoiceTotalAmount)
	assert.Equal(t, 500000.0, active.GrossEstimate)

	require.Len(t, overview.MonthlySalesCurrentYear, 12)
	assert.Equal(t, "6月", overview.MonthlySalesCurrentYear[5].Month)
	assert.Equal(t, 300000.0, overview.MonthlySalesCurrentYear[5].Amount)
	assert.Equal(t, 50000.0, overview.MonthlySalesCurrentYear[10].Amount)
}

func TestSameDayLastYearLeapDay(t *testing.T) {
	leap := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), sameDayLastYear(leap))
}
