// Package app wires the hub and transport together and owns process
// lifecycle.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vmalkov/signalhub/internal/config"
	"github.com/vmalkov/signalhub/internal/core"
	"github.com/vmalkov/signalhub/internal/transport/ws"
)

// App is the assembled signaling server.
type App struct {
	server          *http.Server
	shutdownTimeout time.Duration
	log             *zerolog.Logger
}

// New constructs the application with the provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	hub := core.NewHub(logger)
	server := ws.NewServer(hub, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logger,
	}
}

// Run starts the HTTP server and blocks until context cancellation or a
// fatal listen error. Registry state lives and dies with the process.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
