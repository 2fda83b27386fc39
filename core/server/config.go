package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required for mutating endpoints.
	// When empty, the API key check is disabled.
	ApiKey string `mapstructure:"api_key" default:""`
	// CorsOrigins is a comma-separated list of allowed CORS origins.
	CorsOrigins string `mapstructure:"cors_origins" default:"http://localhost:3000"`
}

// CorsOriginList splits the configured origins, dropping empty entries.
func (c Config) CorsOriginList() []string {
	var origins []string
	for _, origin := range strings.Split(c.CorsOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
