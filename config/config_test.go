package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, 20, cfg.Engine.Slots)
		assert.Equal(t, 3.5, cfg.Engine.ReferencePH)
		assert.Equal(t, "ion", cfg.Engine.PHMode)
		assert.Equal(t, 500.0, cfg.Engine.VolumeML)
		assert.Equal(t, "data/catalog.json", cfg.Catalog.File)
		assert.True(t, cfg.Catalog.Watch)
		assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
		assert.Empty(t, cfg.Gateway.URL)
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, []string{"localhost:6379"}, cfg.Redis.Addrs)
		assert.False(t, cfg.Auth.Enabled)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, "blend_service", cfg.Database.DatabaseName)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("RATE_LIMIT", "50")
		_ = os.Setenv("RATE_WINDOW", "30s")
		_ = os.Setenv("FORMULATION_SLOTS", "12")
		_ = os.Setenv("REFERENCE_PH", "3.2")
		_ = os.Setenv("PH_MODE", "linear")
		_ = os.Setenv("CATALOG_FILE", "/etc/blend/catalog.json")
		_ = os.Setenv("CATALOG_WATCH", "false")
		_ = os.Setenv("GATEWAY_URL", "http://gateway.local/estimate")
		_ = os.Setenv("GATEWAY_RATE_PER_MINUTE", "5")
		_ = os.Setenv("REDIS_ENABLED", "true")
		_ = os.Setenv("REDIS_ADDRS", "redis-a:6379, redis-b:6379")
		_ = os.Setenv("AUTH_ENABLED", "true")
		_ = os.Setenv("API_KEYS", "key1,key2")
		_ = os.Setenv("JWT_SECRET_KEY", "s3cret")
		_ = os.Setenv("LOG_PRETTY", "true")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, 12, cfg.Engine.Slots)
		assert.Equal(t, 3.2, cfg.Engine.ReferencePH)
		assert.Equal(t, "linear", cfg.Engine.PHMode)
		assert.Equal(t, "/etc/blend/catalog.json", cfg.Catalog.File)
		assert.False(t, cfg.Catalog.Watch)
		assert.Equal(t, "http://gateway.local/estimate", cfg.Gateway.URL)
		assert.Equal(t, 5, cfg.Gateway.RatePerMinute)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, []string{"redis-a:6379", "redis-b:6379"}, cfg.Redis.Addrs)
		assert.True(t, cfg.Auth.Enabled)
		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
		assert.True(t, cfg.Logging.Pretty)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("RATE_LIMIT", "invalid")
		_ = os.Setenv("AUTH_ENABLED", "invalid")
		_ = os.Setenv("RATE_WINDOW", "invalid")
		_ = os.Setenv("REFERENCE_PH", "acidic")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 3.5, cfg.Engine.ReferencePH)
	})

	t.Run("parses API keys with whitespace", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("API_KEYS", " key1 , key2 , key3 ")
		defer os.Clearenv()

		cfg := Load()

		assert.Len(t, cfg.Auth.APIKeys, 3)
		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.True(t, cfg.Auth.APIKeys["key3"])
	})

	t.Run("returns nil for empty API keys", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Nil(t, cfg.Auth.APIKeys)
	})
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "only separators", input: " , ,", expected: nil},
		{name: "trims entries", input: " a ,b,, c ", expected: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseList(tt.input))
		})
	}
}

func TestParseCORSOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "defaults only",
			input:    "",
			expected: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		},
		{
			name:     "appends configured origins",
			input:    "https://lab.example.com, https://qa.example.com",
			expected: []string{"http://localhost:3000", "http://127.0.0.1:3000", "https://lab.example.com", "https://qa.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCORSOrigins(tt.input))
		})
	}
}
