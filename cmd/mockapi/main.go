package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/moviecatalog/internal/buildinfo"
	"github.com/dmitrijs2005/moviecatalog/internal/server"
	"github.com/dmitrijs2005/moviecatalog/internal/server/config"
	"github.com/gin-gonic/gin"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)
	gin.SetMode(gin.ReleaseMode)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
