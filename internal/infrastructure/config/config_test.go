package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/fxledger/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 2*time.Second, cfg.RateAPITimeout)
	assert.Equal(t, []string{"EUR", "USD", "SEK", "RUB", "GBP", "JPY", "CNY", "KRW"}, cfg.SupportedCurrencies)
	assert.True(t, cfg.SeedOnStart)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RATE_API_ENDPOINT", "http://rates.internal/v6/latest")
	t.Setenv("SUPPORTED_CURRENCIES", "EUR,USD")
	t.Setenv("SEED_ON_START", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://example", cfg.DatabaseURL)
	assert.Equal(t, "redis://example", cfg.RedisURL)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "http://rates.internal/v6/latest", cfg.RateAPIEndpoint)
	assert.Equal(t, []string{"EUR", "USD"}, cfg.SupportedCurrencies)
	assert.False(t, cfg.SeedOnStart)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("RATE_API_TIMEOUT", "not-a-duration")

	_, err := config.Load()
	require.Error(t, err)
}
