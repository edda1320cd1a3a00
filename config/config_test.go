package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "cloudkitchen", cfg.DBName)
	assert.Equal(t, DefaultExpiryDays, cfg.ExpiryDays)
	assert.Equal(t, float64(DefaultLowStockThreshold), cfg.LowStockThreshold)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ALERT_EXPIRY_DAYS", "5")
	t.Setenv("ALERT_LOW_STOCK_THRESHOLD", "2.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.ExpiryDays)
	assert.Equal(t, 2.5, cfg.LowStockThreshold)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("non-numeric expiry days", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("ALERT_EXPIRY_DAYS", "soon")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("non-positive threshold", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("ALERT_LOW_STOCK_THRESHOLD", "0")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("non-numeric port", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("SERVER_PORT", "http")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
