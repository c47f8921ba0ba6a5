package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"mockapi"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.Addr)
	assert.Empty(t, c.SeedFile)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, 5*time.Second, c.ShutdownTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock.json")
	b, err := json.Marshal(map[string]any{
		"addr":             ":9000",
		"seed_file":        "seed.json",
		"log_format":       "text",
		"shutdown_timeout": "30s",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	withArgs(t, "-c", path, "-a", ":9100", "-l", "debug")

	got := LoadConfig()
	want := &Config{
		Addr:            ":9100",
		SeedFile:        "seed.json",
		LogLevel:        "debug",
		LogFormat:       "text",
		ShutdownTimeout: 30 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestParseFlags(t *testing.T) {
	withArgs(t, "-s", "x.json", "-f", "text", "-t", "2s")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseFlags(cfg) })
	assert.Equal(t, "x.json", cfg.SeedFile)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestParseFlags_BadDurationPanics(t *testing.T) {
	withArgs(t, "-t", "soon")
	require.Panics(t, func() { parseFlags(&Config{}) })
}

func TestParseJson_Errors(t *testing.T) {
	withArgs(t, "-c", filepath.Join(t.TempDir(), "missing.json"))
	require.Panics(t, func() { parseJson(&Config{}) })

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	withArgs(t, "-config", bad)
	require.Panics(t, func() { parseJson(&Config{}) })
}
