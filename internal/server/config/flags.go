package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/moviecatalog/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
//	-a string     bind address (e.g. ":8080")
//	-s string     seed file
//	-l string     log level
//	-f string     log format (json or text)
//	-t duration   shutdown timeout (e.g. "10s")
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-l", "-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to listen on")
	fs.StringVar(&cfg.SeedFile, "s", cfg.SeedFile, "JSON seed file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")
	fs.DurationVar(&cfg.ShutdownTimeout, "t", cfg.ShutdownTimeout, "graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
