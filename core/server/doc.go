// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for server settings such as the listen
// port, the optional API key, and the allowed CORS origins.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the start command to configure middleware.
package server
