package config

import "time"

// Config holds runtime settings for the catalog CLI.
//
// Fields:
//   - APIBaseURL: root URL of the REST mock API exposing /users and /movies.
//   - DatabaseDSN: SQLite file holding the local session.
//   - RedisAddr: host:port of the optional catalog cache; empty disables it.
//   - CatalogCacheTTL: lifetime of the cached movie list.
//   - RequestsPerSecond: outgoing request pacing; 0 means unlimited.
//   - LogLevel, LogFormat: see logging.New.
type Config struct {
	APIBaseURL        string
	DatabaseDSN       string
	RedisAddr         string
	CatalogCacheTTL   time.Duration
	RequestsPerSecond float64
	LogLevel          string
	LogFormat         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.DatabaseDSN = "catalog.db"
	c.RedisAddr = ""
	c.CatalogCacheTTL = 5 * time.Minute
	c.RequestsPerSecond = 0
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including a dotenv file), JSON and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
