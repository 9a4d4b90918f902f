package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "production")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.App.Port)
	assert.Equal(t, "public", cfg.Storage.Root)
	assert.Equal(t, 24*time.Hour, cfg.Cleanup.BatchMaxAge)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	t.Setenv("BACKEND_PORT", "8088")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "assets")
	t.Setenv("DB_USER", "inventory")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 8088, cfg.App.Port)
	assert.Equal(t, "host=db.internal port=6543 user=inventory password=secret dbname=assets sslmode=disable", cfg.Database.DSN())
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("NODE_ENV", "production")
	t.Setenv("BACKEND_PORT", "70000")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_S3RequiresBucket(t *testing.T) {
	t.Setenv("NODE_ENV", "production")
	t.Setenv("S3_ENABLED", "true")
	t.Setenv("S3_BUCKET", "")

	_, err := Load("")
	assert.ErrorContains(t, err, "S3_BUCKET")
}
