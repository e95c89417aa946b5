package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/music-stream-service/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("catalog-api")
	require.NoError(t, err)

	assert.Equal(t, "catalog-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 24*time.Hour, cfg.Storage.SignedURLTTL())
	assert.Equal(t, 24, cfg.Analytics.TrendingWindowHours)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_JWT_ISSUER", "music-stream")
	t.Setenv("STORAGE_SIGNED_URL_TTL_SECONDS", "900")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := config.Load("user-api")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, "music-stream", cfg.Auth.Issuer)
	assert.Equal(t, 15*time.Minute, cfg.Storage.SignedURLTTL())
	assert.False(t, cfg.Postgres.RunMigrations)
}

func TestSignedURLTTLFallsBackOnNonPositive(t *testing.T) {
	for _, seconds := range []int{0, -5} {
		cfg := config.StorageConfig{SignedURLTTLSeconds: seconds}
		assert.Equal(t, 24*time.Hour, cfg.SignedURLTTL())
	}
}
