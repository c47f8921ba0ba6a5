package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/moviecatalog/internal/flagx"
	"github.com/dmitrijs2005/moviecatalog/internal/timex"
)

// JsonConfig is the on-disk form of Config. Absent fields keep their
// current value.
type JsonConfig struct {
	Addr            *string         `json:"addr"`
	SeedFile        *string         `json:"seed_file"`
	LogLevel        *string         `json:"log_level"`
	LogFormat       *string         `json:"log_format"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c/-config, if any. Read or decode
// errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Addr != nil {
		cfg.Addr = *jc.Addr
	}
	if jc.SeedFile != nil {
		cfg.SeedFile = *jc.SeedFile
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
}
