// Package config provides configuration management for the estimate manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, CORS origins)
//   - Database: MySQL/SQLite connection details
//   - Log: Logging level and format
//   - Storage: S3/MinIO credentials for the workbook archive
//   - Sync: workbook source path, custom-path policy, and upload limits
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
