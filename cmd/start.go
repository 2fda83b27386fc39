package cmd

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"estimate-manager/core/config"
	"estimate-manager/core/database"
	"estimate-manager/core/loader"
	"estimate-manager/core/logger"
	"estimate-manager/core/middleware/auth"
	"estimate-manager/core/middleware/rayid"
	"estimate-manager/core/storage"

	"estimate-manager/feature/customers"
	"estimate-manager/feature/dashboard"
	"estimate-manager/feature/finance"
	"estimate-manager/feature/projects"
	"estimate-manager/feature/sync"
	"estimate-manager/feature/workitems"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "estimate-manager/docs/swagger"
)

// @title Estimate Manager API
// @version 1.0
// @description API for the construction estimate and cost management system.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the estimate manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database and migrate the schema
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := database.Migrate(db); err != nil {
			logg.Fatal("Failed to migrate database", zap.Error(err))
		}
		logg.Info("Database ready", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Storage (optional workbook archive)
		var store storage.Client
		if cfg.Storage.Enabled {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			logg.Info("Workbook archive enabled", zap.String("bucket", cfg.Storage.Bucket))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             int(cfg.Sync.MaxUploadBytes) + 1024*1024,
		})

		// 6. Register Features
		mgr := loader.NewManager()
		mgr.Register(sync.NewFeature(db, cfg.Sync, store, cfg.Storage, logg))
		mgr.Register(customers.NewFeature(db, logg))
		mgr.Register(projects.NewFeature(db, logg))
		mgr.Register(finance.NewFeature(db, logg))
		mgr.Register(workitems.NewFeature(db, logg))
		mgr.Register(dashboard.NewFeature(db, logg))

		// Middleware: RayID first so everything downstream is traceable.
		app.Use(rayid.New())
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(cfg.Server.CorsOriginList(), ","),
			AllowHeaders: "Origin, Content-Type, Accept, " + auth.HeaderName,
		}))

		// Request logging through zap with the ray id attached.
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public endpoints before the API key gate.
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
