package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/moviecatalog/internal/buildinfo"
	"github.com/dmitrijs2005/moviecatalog/internal/client/cli"
	"github.com/dmitrijs2005/moviecatalog/internal/client/config"
	"github.com/dmitrijs2005/moviecatalog/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// logs go to stderr so they do not interleave with the REPL output
	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
