package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsnotes/pkg/config"
	"newsnotes/pkg/logger"
)

type testConfig struct {
	HTTP     config.HTTPConfig     `env-prefix:"TEST_"`
	Logging  config.LoggingConfig  `env-prefix:"TEST_"`
	Shutdown config.ShutdownConfig `env-prefix:"TEST_"`
	Session  config.SessionConfig  `env-prefix:"TEST_"`
}

func TestLoad(t *testing.T) {
	ctx := logger.NewContext(context.Background(), logger.NewNop())

	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load[testConfig](ctx, "test", "")
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
		assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
		assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
		assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
		assert.Equal(t, 14*24*time.Hour, cfg.Session.GetTTL())
		assert.Equal(t, 10, cfg.Session.BCryptCost)
	})

	t.Run("missing env file is not an error", func(t *testing.T) {
		cfg, err := config.Load[testConfig](ctx, "test", filepath.Join(t.TempDir(), "absent.env"))
		require.NoError(t, err)
		assert.NotNil(t, cfg)
	})

	t.Run("process environment wins over env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("TEST_HTTP_PORT=9000\nTEST_LOGGER_MODE=production\n"), 0o600))
		t.Setenv("TEST_HTTP_PORT", "9100")
		t.Cleanup(func() { require.NoError(t, os.Unsetenv("TEST_LOGGER_MODE")) })

		cfg, err := config.Load[testConfig](ctx, "test", path)
		require.NoError(t, err)
		assert.Equal(t, 9100, cfg.HTTP.Port)
		assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("TEST_HTTP_PORT", "not_a_number")

		cfg, err := config.Load[testConfig](ctx, "test", "")
		require.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("invalid session ttl falls back", func(t *testing.T) {
		t.Setenv("TEST_SESSION_TTL", "forever")

		cfg, err := config.Load[testConfig](ctx, "test", "")
		require.NoError(t, err)
		assert.Equal(t, 14*24*time.Hour, cfg.Session.GetTTL())
	})
}
