package cmd

import (
	"log"
	"time"

	"estimate-manager/core/config"
	"estimate-manager/core/database"
	"estimate-manager/core/logger"
	"estimate-manager/core/models"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// seedCmd loads the initial local-development dataset. Each entity kind is
// only seeded when its table is still empty.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with an initial development dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		if err := seedData(db); err != nil {
			return err
		}
		logg.Info("Seed complete")
		return nil
	},
}

func seedData(db *gorm.DB) error {
	var customers int64
	if err := db.Model(&models.Customer{}).Count(&customers).Error; err != nil {
		return err
	}
	if customers == 0 {
		yamamoto := "山本店長"
		imamura := "今村部長"
		if err := db.Create([]*models.Customer{
			{
				CustomerID:   "C-001",
				CustomerName: "矢島不動産管理株式会社",
				ContactName:  &yamamoto,
				Status:       models.DefaultCustomerStatus,
			},
			{
				CustomerID:   "C-002",
				CustomerName: "一建設株式会社",
				ContactName:  &imamura,
				Status:       models.DefaultCustomerStatus,
			},
		}).Error; err != nil {
			return err
		}
	}

	var projects int64
	if err := db.Model(&models.Project{}).Count(&projects).Error; err != nil {
		return err
	}
	if projects == 0 {
		address := "東京都江戸川区北葛西1-2-22"
		if err := db.Create(&models.Project{
			ProjectID:        "P-003",
			ProjectSheetName: "P-003_吉野様邸キッチン",
			CustomerID:       "C-001",
			CustomerName:     "矢島不動産管理株式会社",
			ProjectName:      "吉野様邸キッチン",
			SiteAddress:      &address,
			OwnerName:        models.DefaultOwnerName,
			TargetMarginRate: models.DefaultMarginRate,
			ProjectStatus:    "⑦完工",
			CreatedAt:        time.Now().UTC().Truncate(24 * time.Hour),
		}).Error; err != nil {
			return err
		}
	}

	var invoices int64
	if err := db.Model(&models.Invoice{}).Count(&invoices).Error; err != nil {
		return err
	}
	if invoices == 0 {
		note := "seed"
		if err := db.Create(&models.Invoice{
			InvoiceID:       "INV-001",
			ProjectID:       "P-003",
			InvoiceAmount:   1254440,
			RemainingAmount: 1254440,
			Status:          models.InvoiceStatusUnpaid,
			Note:            &note,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

func init() {
	RootCmd.AddCommand(seedCmd)
}
