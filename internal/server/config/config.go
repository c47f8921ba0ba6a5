// Package config handles configuration for the mock API server, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the mock API server.
//
// Fields:
//   - Addr: HTTP bind address.
//   - SeedFile: optional JSON document {"users": [...], "movies": [...]} loaded at start.
//   - LogLevel, LogFormat: see logging.New.
//   - ShutdownTimeout: how long in-flight requests get on shutdown.
type Config struct {
	Addr            string
	SeedFile        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SeedFile = ""
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
