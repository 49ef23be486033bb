package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Load()
		assert.Equal(t, "8080", cfg.Service.Port)
		assert.Equal(t, 10*time.Second, cfg.Account.Timeout)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.False(t, cfg.Tracing.Enabled)
		assert.Equal(t, 10, cfg.ShutdownTimeout)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("ACCOUNT_API_URL", "https://api.example.com")
		t.Setenv("ACCOUNT_API_TIMEOUT", "3s")
		t.Setenv("ACCOUNT_API_TOKEN", "tkn")
		t.Setenv("TRACING_ENABLED", "true")
		t.Setenv("OTEL_SAMPLE_RATE", "0.5")
		t.Setenv("SHUTDOWN_TIMEOUT", "30s")

		cfg := Load()
		assert.Equal(t, "https://api.example.com", cfg.Account.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.Account.Timeout)
		assert.Equal(t, "tkn", cfg.Account.Token)
		assert.True(t, cfg.Tracing.Enabled)
		assert.Equal(t, 0.5, cfg.Tracing.SampleRate)
		assert.Equal(t, 30, cfg.ShutdownTimeout)
	})

	t.Run("invalid durations fall back to defaults", func(t *testing.T) {
		t.Setenv("ACCOUNT_API_TIMEOUT", "soon")
		t.Setenv("SHUTDOWN_TIMEOUT", "10m") // over max

		cfg := Load()
		assert.Equal(t, 10*time.Second, cfg.Account.Timeout)
		assert.Equal(t, 10, cfg.ShutdownTimeout)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Load()
		return cfg
	}

	t.Run("default config validates", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := valid()
		cfg.Service.Port = "not-a-port"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT")
	})

	t.Run("bad environment", func(t *testing.T) {
		cfg := valid()
		cfg.Service.Env = "qa"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ENV")
	})

	t.Run("missing account url", func(t *testing.T) {
		cfg := valid()
		cfg.Account.BaseURL = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ACCOUNT_API_URL")
	})

	t.Run("tracing enabled requires endpoint", func(t *testing.T) {
		cfg := valid()
		cfg.Tracing.Enabled = true
		cfg.Tracing.Endpoint = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OTEL_COLLECTOR_ENDPOINT")
	})

	t.Run("sample rate bounds", func(t *testing.T) {
		cfg := valid()
		cfg.Tracing.Enabled = true
		cfg.Tracing.SampleRate = 1.5
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OTEL_SAMPLE_RATE")
	})

	t.Run("aggregates multiple failures", func(t *testing.T) {
		cfg := valid()
		cfg.Service.Port = "x"
		cfg.Logging.Level = "loud"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT")
		assert.Contains(t, err.Error(), "LOG_LEVEL")
	})
}
