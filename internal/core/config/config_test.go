package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the collaborator URLs every load needs.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CATALOGUE_URL", "http://catalogue.test")
	t.Setenv("INVENTORY_URL", "http://inventory.test")
	t.Setenv("CHECKOUT_URL", "http://checkout.test")
	t.Setenv("ORDER_URL", "http://order.test")
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("REDIS_URL")
	os.Unsetenv("CATALOG_CACHE_TTL_SECONDS")
	os.Unsetenv("TRACKING_POLL_INTERVAL_MS")

	setRequiredEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "redis://localhost:6379", cfg.Cache.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.Cache.CatalogTTL())
	assert.Equal(t, 2*time.Second, cfg.Tracking.PollInterval())
}

// TestLoad_Overrides verifies that environment variables override defaults.
func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TRACKING_POLL_INTERVAL_MS", "500")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 500*time.Millisecond, cfg.Tracking.PollInterval())
	assert.Equal(t, "http://order.test", cfg.Collaborators.OrderURL)
}

// TestLoad_MissingRequired verifies that missing collaborator URLs fail the load.
func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ORDER_URL", "")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORDER_URL")
}
