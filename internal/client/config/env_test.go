package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Variables(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"bin"}

	t.Setenv("CATALOG_API_URL", "http://api.test")
	t.Setenv("CATALOG_REDIS_ADDR", "redis:6379")
	t.Setenv("CATALOG_CACHE_TTL", "90s")
	t.Setenv("CATALOG_RPS", "2.5")
	t.Setenv("CATALOG_LOG_FORMAT", "json")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://api.test", cfg.APIBaseURL)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 90*time.Second, cfg.CatalogCacheTTL)
	assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "catalog.db", cfg.DatabaseDSN)
}

func TestParseEnv_DotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_DB_DSN=dotenv.db\nCATALOG_LOG_LEVEL=error\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("CATALOG_DB_DSN")
		_ = os.Unsetenv("CATALOG_LOG_LEVEL")
	})

	os.Args = []string{"bin", "-e", path}
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "dotenv.db", cfg.DatabaseDSN)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestParseEnv_Errors(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("explicit file missing panics", func(t *testing.T) {
		os.Args = []string{"bin", "-e", filepath.Join(t.TempDir(), "nope.env")}
		require.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("bad rps panics", func(t *testing.T) {
		os.Args = []string{"bin"}
		t.Setenv("CATALOG_RPS", "fast")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("bad ttl panics", func(t *testing.T) {
		os.Args = []string{"bin"}
		t.Setenv("CATALOG_CACHE_TTL", "forever")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
