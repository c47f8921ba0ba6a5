package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/moviecatalog/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   REST API root URL
//	-d string   SQLite DSN for the local session
//	-r string   Redis address for the catalog cache
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first so flags owned by other
// stages (-c, -e) do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "REST API root URL")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite DSN for the local session")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address for the catalog cache")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
