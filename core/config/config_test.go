package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "blitz-stats", cfg.Storage.Bucket)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "tankopedia/tankopedia.json", cfg.Ingest.TankopediaObject)
	assert.Equal(t, 36000, cfg.Ingest.MaxClockSkewSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("INGEST_CACHE_TTL_SECONDS", "0")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 0, cfg.Ingest.CacheTTLSeconds)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".env"), []byte("INGEST_DEFAULT_REGION=asia\n"), 0o600)
	require.NoError(t, err)
	t.Cleanup(func() { os.Unsetenv("INGEST_DEFAULT_REGION") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "asia", cfg.Ingest.DefaultRegion)
}
