package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/moviecatalog/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv loads a dotenv file into the process environment and overlays
// Config with the CATALOG_* variables. Variables already set in the
// environment win over the file. A missing default file is ignored; a
// missing explicit file (-e) or a malformed value panics, like parseJson.
func parseEnv(cfg *Config) {
	envFile := flagx.EnvFileFlag()
	explicit := envFile != ""
	if !explicit {
		envFile = defaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv("CATALOG_API_URL"); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv("CATALOG_DB_DSN"); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("CATALOG_REDIS_ADDR"); ok {
		cfg.RedisAddr = v
	}
	if v, ok := os.LookupEnv("CATALOG_CACHE_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.CatalogCacheTTL = ttl
	}
	if v, ok := os.LookupEnv("CATALOG_RPS"); ok {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(err)
		}
		cfg.RequestsPerSecond = rps
	}
	if v, ok := os.LookupEnv("CATALOG_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("CATALOG_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
}
