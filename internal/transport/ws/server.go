// Package ws exposes the signaling hub over a websocket endpoint and
// supervises the lifecycle of each peer connection.
package ws

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vmalkov/signalhub/internal/config"
	"github.com/vmalkov/signalhub/internal/core"
)

// NewServer builds the HTTP server carrying the signaling endpoint.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/ws", NewHandler(hub, cfg.WriteTimeout, logger))

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	_, _ = fmt.Fprint(w, "ok")
}
