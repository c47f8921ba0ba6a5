// Package server runs the mock REST API as a standalone HTTP service. It
// wires configuration, logging and the optional seed file, and shuts the
// listener down gracefully on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/moviecatalog/internal/logging"
	"github.com/dmitrijs2005/moviecatalog/internal/mockapi"
	"github.com/dmitrijs2005/moviecatalog/internal/server/config"
)

// Collections served by the mock API.
var Collections = []string{"users", "movies"}

type App struct {
	config *config.Config
	logger logging.Logger
	api    *mockapi.Server
}

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}
	logger = logger.With("module", "mockapi")

	api := mockapi.New(logger, Collections...)
	if c.SeedFile != "" {
		if err := api.LoadSeedFile(c.SeedFile); err != nil {
			return nil, fmt.Errorf("seed init error: %w", err)
		}
	}

	return &App{config: c, logger: logger, api: api}, nil
}

// initSignalHandler returns a context cancelled on SIGINT, SIGTERM or
// SIGQUIT. stop releases the signal registration.
func (app *App) initSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

// Run serves until ctx is cancelled or a signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := app.initSignalHandler(ctx)
	defer stop()

	listen, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return err
	}
	return app.serve(ctx, listen)
}

func (app *App) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           app.api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting mock API", "address", listen.Addr().String())
		if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "Stopping mock API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
