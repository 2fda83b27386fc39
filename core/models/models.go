package models

import "time"

// Default labels applied when the workbook or an API caller leaves a field blank.
// These mirror the conventions of the source-of-record spreadsheet.
const (
	DefaultCustomerStatus = "アクティブ"
	DefaultProjectStatus  = "①リード"
	DefaultOwnerName      = "吉野博"
	DefaultMarginRate     = 0.25
	DefaultProjectName    = "案件未設定"

	// PlaceholderCustomerID is the reserved business key for the stub customer
	// that child rows are attached to when their customer column is blank.
	PlaceholderCustomerID     = "C-000"
	PlaceholderCustomerName   = "未設定顧客"
	PlaceholderCustomerStatus = "一時"
)

// Customer is a client of the business, keyed by a stable business key
// (e.g. "C-001") distinct from the storage primary key.
type Customer struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	CustomerID   string  `gorm:"size:16;uniqueIndex;not null" json:"customer_id"`
	CustomerName string  `gorm:"size:255;not null" json:"customer_name"`
	ContactName  *string `gorm:"size:255" json:"contact_name"`
	Status       string  `gorm:"size:64;not null" json:"status"`
}

// Project is a construction project. CustomerName is a denormalized snapshot
// taken at last write, intentionally not re-derived via join.
type Project struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	ProjectID        string    `gorm:"size:16;uniqueIndex;not null" json:"project_id"`
	ProjectSheetName string    `gorm:"size:64;uniqueIndex;not null" json:"project_sheet_name"`
	CustomerID       string    `gorm:"size:16;index;not null" json:"customer_id"`
	CustomerName     string    `gorm:"size:255;not null" json:"customer_name"`
	ProjectName      string    `gorm:"size:255;not null" json:"project_name"`
	SiteAddress      *string   `gorm:"size:255" json:"site_address"`
	OwnerName        string    `gorm:"size:128;not null" json:"owner_name"`
	TargetMarginRate float64   `gorm:"not null" json:"target_margin_rate"`
	ProjectStatus    string    `gorm:"size:64;not null" json:"project_status"`
	CreatedAt        time.Time `gorm:"type:date;not null" json:"created_at"`

	Customer *Customer `gorm:"foreignKey:CustomerID;references:CustomerID" json:"-"`
}

// Invoice is a billing record against a project.
// Invariant: RemainingAmount = max(InvoiceAmount - PaidAmount, 0).
type Invoice struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"-"`
	InvoiceID       string     `gorm:"size:16;uniqueIndex;not null" json:"invoice_id"`
	ProjectID       string     `gorm:"size:16;index;not null" json:"project_id"`
	InvoiceAmount   float64    `gorm:"not null" json:"invoice_amount"`
	InvoiceType     *string    `gorm:"size:64" json:"invoice_type"`
	BilledAt        *time.Time `gorm:"type:date" json:"billed_at"`
	PaidAmount      float64    `gorm:"not null;default:0" json:"paid_amount"`
	RemainingAmount float64    `gorm:"not null;default:0" json:"remaining_amount"`
	Status          string     `gorm:"size:32;not null" json:"status"`
	Note            *string    `gorm:"type:text" json:"note"`

	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID" json:"-"`
}

// Payment is an outgoing vendor payment against a project.
// Invariant: RemainingAmount = max(OrderedAmount - PaidAmount, 0).
type Payment struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"-"`
	PaymentID       string     `gorm:"size:16;uniqueIndex;not null" json:"payment_id"`
	ProjectID       string     `gorm:"size:16;index;not null" json:"project_id"`
	VendorID        *string    `gorm:"size:32" json:"vendor_id"`
	VendorName      *string    `gorm:"size:255" json:"vendor_name"`
	WorkDescription *string    `gorm:"size:255" json:"work_description"`
	OrderedAmount   float64    `gorm:"not null;default:0" json:"ordered_amount"`
	PaidAmount      float64    `gorm:"not null;default:0" json:"paid_amount"`
	RemainingAmount float64    `gorm:"not null;default:0" json:"remaining_amount"`
	Status          *string    `gorm:"size:32" json:"status"`
	Note            *string    `gorm:"type:text" json:"note"`
	PaidAt          *time.Time `gorm:"type:date" json:"paid_at"`

	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID" json:"-"`
}

// WorkItemMaster is a catalog entry of standard construction work items.
// SourceItemID is the external numeric key carried over from the workbook;
// when absent, (Category, ItemName) acts as the natural key.
type WorkItemMaster struct {
	ID                uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	SourceItemID      *int     `gorm:"index" json:"source_item_id"`
	Category          string   `gorm:"size:128;not null;index:idx_work_item_natural" json:"category"`
	ItemName          string   `gorm:"size:255;not null;index:idx_work_item_natural" json:"item_name"`
	Specification     *string  `gorm:"size:255" json:"specification"`
	Unit              *string  `gorm:"size:32" json:"unit"`
	StandardUnitPrice float64  `gorm:"not null;default:0" json:"standard_unit_price"`
	DefaultVendorName *string  `gorm:"size:255" json:"default_vendor_name"`
	MarginRate        *float64 `json:"margin_rate"`
}

// ProjectItem is a line item owned by exactly one project.
// LineTotal = Quantity * UnitPrice, computed at creation and not re-derived.
type ProjectItem struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID     string  `gorm:"size:16;index;not null" json:"project_id"`
	Category      string  `gorm:"size:128;not null" json:"category"`
	ItemName      string  `gorm:"size:255;not null" json:"item_name"`
	Specification *string `gorm:"size:255" json:"specification"`
	Unit          *string `gorm:"size:32" json:"unit"`
	Quantity      float64 `gorm:"not null" json:"quantity"`
	UnitPrice     float64 `gorm:"not null" json:"unit_price"`
	LineTotal     float64 `gorm:"not null" json:"line_total"`

	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// All returns the full entity list in migration order (parents first).
func All() []any {
	return []any{
		&Customer{},
		&Project{},
		&Invoice{},
		&Payment{},
		&WorkItemMaster{},
		&ProjectItem{},
	}
}
