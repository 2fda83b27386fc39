// Package database handles database connections and schema migration.
//
// It provides a wrapper around GORM to configure either a MySQL or a SQLite
// connection based on the application's configuration. SQLite is the default
// so a fresh checkout runs without external services; MySQL is used for
// shared deployments.
//
// # Connect
//
// The Connect function establishes a connection for the configured driver.
// MySQL connections get pool limits and an initial ping with timeout; SQLite
// connections get their parent directory created on demand.
//
// # Migrate
//
// Migrate runs GORM AutoMigrate for all domain entities in dependency order
// (customers before projects, projects before invoices/payments/items), so
// foreign keys always resolve.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	if err := database.Migrate(db); err != nil {
//	    log.Fatal("Migration failed", err)
//	}
package database
