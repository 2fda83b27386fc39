package customers

import (
	"context"

	"estimate-manager/core/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles customer operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new customer service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ListCustomers returns all customers ordered by business key.
func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.WithContext(ctx).Order("customer_id asc").Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
