package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.APIBaseURL)
	assert.Equal(t, "catalog.db", c.DatabaseDSN)
	assert.Empty(t, c.RedisAddr)
	assert.Equal(t, 5*time.Minute, c.CatalogCacheTTL)
	assert.Zero(t, c.RequestsPerSecond)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	jsonPath := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"api_base_url": "http://from-json:1",
		"log_level":    "warn",
	})

	t.Setenv("CATALOG_API_URL", "http://from-env:1")
	t.Setenv("CATALOG_DB_DSN", "env.db")
	t.Setenv("CATALOG_LOG_LEVEL", "debug")

	os.Args = []string{"bin", "-c", jsonPath, "-d", "flag.db"}
	cfg := LoadConfig()
	require.NotNil(t, cfg)

	// json beats env, flag beats json/env, env beats defaults
	assert.Equal(t, "http://from-json:1", cfg.APIBaseURL)
	assert.Equal(t, "flag.db", cfg.DatabaseDSN)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}
