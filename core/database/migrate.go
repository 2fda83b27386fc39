package database

import (
	"fmt"

	"estimate-manager/core/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all domain entities.
// Parents are migrated before children so foreign keys resolve.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
