package workitems

import (
	"context"
	"errors"

	"estimate-manager/core/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrProjectNotFound is returned when a project key does not resolve.
	ErrProjectNotFound = errors.New("project not found")
	// ErrMasterNotFound is returned when a referenced catalog entry does not
	// exist.
	ErrMasterNotFound = errors.New("work item master not found")
	// ErrItemIncomplete is returned when neither the payload nor a referenced
	// catalog entry supplies category and item name.
	ErrItemIncomplete = errors.New("category and item_name are required")
	// ErrAmountOutOfRange is returned when the quantity is not positive or the
	// resolved unit price is negative.
	ErrAmountOutOfRange = errors.New("quantity must be positive and unit_price must not be negative")
)

// MasterFilter narrows a catalog listing.
type MasterFilter struct {
	Category string
	Query    string
	Limit    int
}

// ItemCreateInput is the payload for adding a line item to a project. When
// MasterItemID is set, unfilled fields inherit from the catalog entry.
type ItemCreateInput struct {
	MasterItemID  *uint    `json:"master_item_id"`
	Category      string   `json:"category"`
	ItemName      string   `json:"item_name"`
	Specification *string  `json:"specification"`
	Unit          *string  `json:"unit"`
	Quantity      float64  `json:"quantity"`
	UnitPrice     *float64 `json:"unit_price"`
}

// Service handles work item catalog and project line item operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new work item service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ListMasters returns catalog entries matching the filter.
func (s *Service) ListMasters(ctx context.Context, filter MasterFilter) ([]models.WorkItemMaster, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}

	query := s.db.WithContext(ctx).Model(&models.WorkItemMaster{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Query != "" {
		query = query.Where("item_name LIKE ?", "%"+filter.Query+"%")
	}

	var masters []models.WorkItemMaster
	err := query.Order("category asc, item_name asc").Limit(limit).Find(&masters).Error
	if err != nil {
		return nil, err
	}
	return masters, nil
}

// ListProjectItems returns the line items of one project.
func (s *Service) ListProjectItems(ctx context.Context, projectID string) ([]models.ProjectItem, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	var items []models.ProjectItem
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CreateProjectItem adds a line item, inheriting unfilled fields from the
// referenced catalog entry. LineTotal is computed once at creation.
func (s *Service) CreateProjectItem(ctx context.Context, projectID string, input ItemCreateInput) (*models.ProjectItem, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	var master *models.WorkItemMaster
	if input.MasterItemID != nil {
		master = &models.WorkItemMaster{}
		err := s.db.WithContext(ctx).First(master, *input.MasterItemID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMasterNotFound
		}
		if err != nil {
			return nil, err
		}
	}

	category := input.Category
	itemName := input.ItemName
	specification := input.Specification
	unit := input.Unit
	unitPrice := 0.0
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}
	if master != nil {
		if category == "" {
			category = master.Category
		}
		if itemName == "" {
			itemName = master.ItemName
		}
		if specification == nil {
			specification = master.Specification
		}
		if unit == nil {
			unit = master.Unit
		}
		if input.UnitPrice == nil {
			unitPrice = master.StandardUnitPrice
		}
	}
	if category == "" || itemName == "" {
		return nil, ErrItemIncomplete
	}
	if input.Quantity <= 0 || unitPrice < 0 {
		return nil, ErrAmountOutOfRange
	}

	item := &models.ProjectItem{
		ProjectID:     projectID,
		Category:      category,
		ItemName:      itemName,
		Specification: specification,
		Unit:          unit,
		Quantity:      input.Quantity,
		UnitPrice:     unitPrice,
		LineTotal:     input.Quantity * unitPrice,
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}

	s.logger.Info("project item created",
		zap.String("project_id", projectID),
		zap.String("item_name", itemName))
	return item, nil
}

func (s *Service) requireProject(ctx context.Context, projectID string) error {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrProjectNotFound
	}
	return nil
}
