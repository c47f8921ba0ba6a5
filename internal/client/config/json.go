package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/moviecatalog/internal/flagx"
	"github.com/dmitrijs2005/moviecatalog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so a partial file only overrides
// what it names.
type JsonConfig struct {
	APIBaseURL        *string         `json:"api_base_url"`
	DatabaseDSN       *string         `json:"database_dsn"`
	RedisAddr         *string         `json:"redis_addr"`
	CatalogCacheTTL   *timex.Duration `json:"catalog_cache_ttl"`
	RequestsPerSecond *float64        `json:"requests_per_second"`
	LogLevel          *string         `json:"log_level"`
	LogFormat         *string         `json:"log_format"`
}

// parseJson overlays Config with values loaded from the file named by
// -c/-config. Without the flag it does nothing. Read or decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.RedisAddr != nil {
		cfg.RedisAddr = *jc.RedisAddr
	}
	if jc.CatalogCacheTTL != nil {
		cfg.CatalogCacheTTL = jc.CatalogCacheTTL.Duration
	}
	if jc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *jc.RequestsPerSecond
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
}
