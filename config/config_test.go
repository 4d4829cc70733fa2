package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "") // registers restore
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetenv(t,
		"CINEMAS_API_URL",
		"CINEMAS_HTTP_TIMEOUT",
		"CINEMAS_SERVICE_CHARGE_PERCENT",
		"CINEMAS_LOG_LEVEL",
	)

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.APIBaseURL)
	assert.Equal(t, 12*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 6, cfg.ServiceChargePercent)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CINEMAS_API_URL", "http://localhost:3000")
	t.Setenv("CINEMAS_HTTP_TIMEOUT", "3s")
	t.Setenv("CINEMAS_SERVICE_CHARGE_PERCENT", "10")
	t.Setenv("CINEMAS_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10, cfg.ServiceChargePercent)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("CINEMAS_HTTP_TIMEOUT", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}
