package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads config with defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("CORS_ORIGIN", "")
		t.Setenv("RATE_LIMIT_PER_MINUTE", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8000, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "http://localhost:3000", cfg.CORSOrigin)
		assert.Equal(t, 60, cfg.RateLimitPerMin)
	})

	t.Run("reads overrides from environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("CORS_ORIGIN", "https://app.example.com")
		t.Setenv("RATE_LIMIT_PER_MINUTE", "120")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "https://app.example.com", cfg.CORSOrigin)
		assert.Equal(t, 120, cfg.RateLimitPerMin)
	})

	t.Run("falls back to default rate limit when non-positive", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, DefaultRateLimitPerMin, cfg.RateLimitPerMin)
	})
}
