package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "catalog")
	t.Setenv("DB_NAME", "catalog")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://admin.example.com , ,http://localhost:3000")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("REDIS_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, "file://migrations", cfg.DB.MigrationsPath)
	assert.Equal(t, []string{"https://admin.example.com", "http://localhost:3000"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 25*time.Second, cfg.Events.Heartbeat)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_MissingDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "catalog")
	t.Setenv("DB_NAME", "catalog")
	t.Setenv("SSE_HEARTBEAT", "-1s")

	_, err := Load()
	assert.ErrorContains(t, err, "SSE_HEARTBEAT")
}
