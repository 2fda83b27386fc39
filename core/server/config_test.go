package server_test

import (
	"testing"

	"estimate-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_CorsOriginList(t *testing.T) {
	tests := []struct {
		name    string
		origins string
		want    []string
	}{
		{"single", "http://localhost:3000", []string{"http://localhost:3000"}},
		{"multiple with spaces", "http://a.example, http://b.example", []string{"http://a.example", "http://b.example"}},
		{"empty entries dropped", ",http://a.example,,", []string{"http://a.example"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{CorsOrigins: tt.origins}
			assert.Equal(t, tt.want, c.CorsOriginList())
		})
	}
}
