package cmd

import (
	"context"
	"log"

	"estimate-manager/core/config"
	"estimate-manager/core/database"
	"estimate-manager/core/logger"
	"estimate-manager/core/storage"
	"estimate-manager/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncWorkbookPath string

// syncCmd runs one workbook synchronization and exits.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the estimate workbook into the database",
	Long: `Replays the configured (or a custom) workbook into the database in a
single transaction and prints the per-sheet upsert counts.`,
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

		var store storage.Client
		if cfg.Storage.Enabled {
			if store, err = storage.NewClient(cfg.Storage); err != nil {
				return err
			}
		}

		svc := sync.NewService(db, cfg.Sync, store, cfg.Storage, logg)

		var result *sync.Result
		if syncWorkbookPath != "" {
			result, err = svc.SyncPath(context.Background(), syncWorkbookPath)
		} else {
			result, err = svc.SyncDefault(context.Background())
		}
		if err != nil {
			return err
		}

		logg.Info("Sync complete",
			zap.String("workbook", result.WorkbookPath),
			zap.Int("customers", result.CustomersUpserted),
			zap.Int("projects", result.ProjectsUpserted),
			zap.Int("invoices", result.InvoicesUpserted),
			zap.Int("payments", result.PaymentsUpserted),
			zap.Int("work_items", result.WorkItemsUpserted),
		)
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncWorkbookPath, "workbook", "", "workbook path (defaults to the configured source)")
	RootCmd.AddCommand(syncCmd)
}
