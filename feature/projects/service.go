package projects

import (
	"context"
	"errors"
	"strings"
	"time"

	"estimate-manager/core/idgen"
	"estimate-manager/core/models"
	"estimate-manager/core/sanitize"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrCustomerNotFound is returned when a create references an unknown
	// customer key.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProjectNotFound is returned when a project key does not resolve.
	ErrProjectNotFound = errors.New("project not found")
	// ErrNameRequired is returned when the project name is blank after
	// trimming.
	ErrNameRequired = errors.New("project_name is required")
)

// CreateInput is the payload for creating a project. The business key and
// the sheet name are allocated server-side.
type CreateInput struct {
	CustomerID       string  `json:"customer_id"`
	ProjectName      string  `json:"project_name"`
	SiteAddress      string  `json:"site_address"`
	OwnerName        string  `json:"owner_name"`
	TargetMarginRate float64 `json:"target_margin_rate"`
}

// ListFilter narrows a project listing.
type ListFilter struct {
	Status     string
	CustomerID string
	Offset     int
	Limit      int
}

// ListResult is a page of projects.
type ListResult struct {
	Items []models.Project `json:"items"`
	Total int              `json:"total"`
}

// Service handles project operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new project service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// CreateProject allocates the next project key, derives a unique sheet name
// and persists the project. The customer must already exist; its name is
// snapshotted onto the project.
func (s *Service) CreateProject(ctx context.Context, input CreateInput) (*models.Project, error) {
	projectName := strings.TrimSpace(input.ProjectName)
	if projectName == "" {
		return nil, ErrNameRequired
	}

	var project *models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Where("customer_id = ?", input.CustomerID).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		var existingIDs []string
		if err := tx.Model(&models.Project{}).Pluck("project_id", &existingIDs).Error; err != nil {
			return err
		}
		projectID := idgen.NextID(existingIDs, idgen.ProjectPrefix)

		var sheetNames []string
		if err := tx.Model(&models.Project{}).Pluck("project_sheet_name", &sheetNames).Error; err != nil {
			return err
		}
		taken := make(map[string]struct{}, len(sheetNames))
		for _, name := range sheetNames {
			taken[name] = struct{}{}
		}
		base := sanitize.SheetName(projectID+"_"+projectName, projectID+"_案件")
		sheetName := sanitize.UniqueSheetName(base, taken)

		ownerName := strings.TrimSpace(input.OwnerName)
		if ownerName == "" {
			ownerName = models.DefaultOwnerName
		}
		marginRate := input.TargetMarginRate
		if marginRate <= 0 {
			marginRate = models.DefaultMarginRate
		}

		project = &models.Project{
			ProjectID:        projectID,
			ProjectSheetName: sheetName,
			CustomerID:       customer.CustomerID,
			CustomerName:     customer.CustomerName,
			ProjectName:      projectName,
			OwnerName:        ownerName,
			TargetMarginRate: marginRate,
			ProjectStatus:    models.DefaultProjectStatus,
			CreatedAt:        time.Now().UTC().Truncate(24 * time.Hour),
		}
		if addr := strings.TrimSpace(input.SiteAddress); addr != "" {
			project.SiteAddress = &addr
		}
		return tx.Create(project).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ProjectID),
		zap.String("customer_id", project.CustomerID))
	return project, nil
}

// ListProjects returns projects matching the filter, ordered by business key.
func (s *Service) ListProjects(ctx context.Context, filter ListFilter) (*ListResult, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := s.db.WithContext(ctx).Model(&models.Project{})
	if filter.Status != "" {
		query = query.Where("project_status = ?", filter.Status)
	}
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}

	var projects []models.Project
	err := query.Order("project_id asc").Offset(offset).Limit(limit).Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: projects, Total: len(projects)}, nil
}

// GetProject returns one project by business key.
func (s *Service) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Where("project_id = ?", projectID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}
