package dashboard

import (
	"context"
	"fmt"
	"time"

	"estimate-manager/core/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Summary aggregates store-wide totals for the dashboard landing view.
type Summary struct {
	ProjectTotal           int            `json:"project_total"`
	ProjectStatusCounts    map[string]int `json:"project_status_counts"`
	InvoiceTotalAmount     float64        `json:"invoice_total_amount"`
	InvoiceRemainingAmount float64        `json:"invoice_remaining_amount"`
	PaymentTotalAmount     float64        `json:"payment_total_amount"`
	PaymentRemainingAmount float64        `json:"payment_remaining_amount"`
	ItemTotalAmount        float64        `json:"item_total_amount"`
}

// MonthlySalesPoint is one month's billed total for the current year.
type MonthlySalesPoint struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// ActiveProject is a project row enriched with its billing and ordering
// totals for the overview table.
type ActiveProject struct {
	ProjectID          string    `json:"project_id"`
	ProjectName        string    `json:"project_name"`
	CustomerName       string    `json:"customer_name"`
	ProjectStatus      string    `json:"project_status"`
	SiteAddress        *string   `json:"site_address"`
	CreatedAt          time.Time `json:"created_at"`
	InvoiceTotalAmount float64   `json:"invoice_total_amount"`
	PaymentTotalAmount float64   `json:"payment_total_amount"`
	GrossEstimate      float64   `json:"gross_estimate"`
}

// Overview is the sales-centric dashboard payload: year-to-date figures,
// a monthly breakdown and the in-flight projects.
type Overview struct {
	CurrentMonthSales       float64             `json:"current_month_sales"`
	YTDSales                float64             `json:"ytd_sales"`
	AllTimeSales            float64             `json:"all_time_sales"`
	LastYearYTDSales        float64             `json:"last_year_ytd_sales"`
	YoYGrowthRate           float64             `json:"yoy_growth_rate"`
	ReceivableBalance       float64             `json:"receivable_balance"`
	PayableBalance          float64             `json:"payable_balance"`
	ActiveProjectCount      int                 `json:"active_project_count"`
	MonthlySalesCurrentYear []MonthlySalesPoint `json:"monthly_sales_current_year"`
	ActiveProjects          []ActiveProject     `json:"active_projects"`
}

// maxOverviewProjects caps the project table in the overview payload.
const maxOverviewProjects = 12

// Service computes dashboard aggregations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new dashboard service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// GetSummary returns store-wide totals per entity kind.
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	db := s.db.WithContext(ctx)
	summary := &Summary{ProjectStatusCounts: map[string]int{}}

	var projectTotal int64
	if err := db.Model(&models.Project{}).Count(&projectTotal).Error; err != nil {
		return nil, err
	}
	summary.ProjectTotal = int(projectTotal)

	type statusCount struct {
		ProjectStatus string
		Count         int
	}
	var statusRows []statusCount
	err := db.Model(&models.Project{}).
		Select("project_status, count(*) as count").
		Group("project_status").
		Scan(&statusRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		status := row.ProjectStatus
		if status == "" {
			status = "未設定"
		}
		summary.ProjectStatusCounts[status] = row.Count
	}

	sums := []struct {
		model any
		expr  string
		dest  *float64
	}{
		{&models.Invoice{}, "coalesce(sum(invoice_amount), 0)", &summary.InvoiceTotalAmount},
		{&models.Invoice{}, "coalesce(sum(remaining_amount), 0)", &summary.InvoiceRemainingAmount},
		{&models.Payment{}, "coalesce(sum(ordered_amount), 0)", &summary.PaymentTotalAmount},
		{&models.Payment{}, "coalesce(sum(remaining_amount), 0)", &summary.PaymentRemainingAmount},
		{&models.ProjectItem{}, "coalesce(sum(line_total), 0)", &summary.ItemTotalAmount},
	}
	for _, sum := range sums {
		if err := db.Model(sum.model).Select(sum.expr).Scan(sum.dest).Error; err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// GetOverview returns the sales overview as of now.
func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	return s.overviewAt(ctx, time.Now().UTC())
}

// overviewAt computes the overview relative to a reference day.
func (s *Service) overviewAt(ctx context.Context, now time.Time) (*Overview, error) {
	db := s.db.WithContext(ctx)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastYearCutoff := sameDayLastYear(today)

	overview := &Overview{}
	if err := db.Model(&models.Invoice{}).
		Select("coalesce(sum(invoice_amount), 0)").
		Scan(&overview.AllTimeSales).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Invoice{}).
		Select("coalesce(sum(remaining_amount), 0)").
		Scan(&overview.ReceivableBalance).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Payment{}).
		Select("coalesce(sum(remaining_amount), 0)").
		Scan(&overview.PayableBalance).Error; err != nil {
		return nil, err
	}

	var invoices []models.Invoice
	if err := db.Where("billed_at IS NOT NULL").Find(&invoices).Error; err != nil {
		return nil, err
	}

	monthlyBuckets := make([]float64, 12)
	for _, invoice := range invoices {
		billedAt := *invoice.BilledAt
		amount := invoice.InvoiceAmount

		switch {
		case billedAt.Year() == today.Year():
			monthlyBuckets[int(billedAt.Month())-1] += amount
			if !billedAt.Before(monthStart) && !billedAt.After(today) {
				overview.CurrentMonthSales += amount
			}
			if !billedAt.After(today) {
				overview.YTDSales += amount
			}
		case billedAt.Year() == today.Year()-1 && !billedAt.After(lastYearCutoff):
			overview.LastYearYTDSales += amount
		}
	}
	if overview.LastYearYTDSales > 0 {
		overview.YoYGrowthRate = (overview.YTDSales - overview.LastYearYTDSales) / overview.LastYearYTDSales * 100
	}

	invoiceByProject, err := sumByProject(db, &models.Invoice{}, "invoice_amount")
	if err != nil {
		return nil, err
	}
	paymentByProject, err := sumByProject(db, &models.Payment{}, "ordered_amount")
	if err != nil {
		return nil, err
	}

	// Projects still in flight: anything not marked completed or lost.
	var projects []models.Project
	err = db.Where("project_status NOT LIKE ? AND project_status NOT LIKE ?", "%完工%", "%失注%").
		Order("created_at desc").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	overview.ActiveProjectCount = len(projects)

	overview.ActiveProjects = make([]ActiveProject, 0, maxOverviewProjects)
	for i, project := range projects {
		if i >= maxOverviewProjects {
			break
		}
		invoiceTotal := invoiceByProject[project.ProjectID]
		paymentTotal := paymentByProject[project.ProjectID]
		overview.ActiveProjects = append(overview.ActiveProjects, ActiveProject{
			ProjectID:          project.ProjectID,
			ProjectName:        project.ProjectName,
			CustomerName:       project.CustomerName,
			ProjectStatus:      project.ProjectStatus,
			SiteAddress:        project.SiteAddress,
			CreatedAt:          project.CreatedAt,
			InvoiceTotalAmount: invoiceTotal,
			PaymentTotalAmount: paymentTotal,
			GrossEstimate:      invoiceTotal - paymentTotal,
		})
	}

	overview.MonthlySalesCurrentYear = make([]MonthlySalesPoint, 12)
	for month := 1; month <= 12; month++ {
		overview.MonthlySalesCurrentYear[month-1] = MonthlySalesPoint{
			Month:  fmt.Sprintf("%d月", month),
			Amount: monthlyBuckets[month-1],
		}
	}
	return overview, nil
}

func sumByProject(db *gorm.DB, model any, column string) (map[string]float64, error) {
	type projectSum struct {
		ProjectID string
		Total     float64
	}
	var rows []projectSum
	err := db.Model(model).
		Select("project_id, coalesce(sum(" + column + "), 0) as total").
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[string]float64, len(rows))
	for _, row := range rows {
		sums[row.ProjectID] = row.Total
	}
	return sums, nil
}

// sameDayLastYear shifts a date back one year, landing on Feb 28 when the
// source is a leap day.
func sameDayLastYear(day time.Time) time.Time {
	if day.Month() == time.February && day.Day() == 29 {
		return time.Date(day.Year()-1, time.February, 28, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(day.Year()-1, day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}
