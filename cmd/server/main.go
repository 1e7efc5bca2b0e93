package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vmalkov/signalhub/internal/app"
	"github.com/vmalkov/signalhub/internal/config"
	"github.com/vmalkov/signalhub/internal/log"
)

func main() {
	defaults := config.Default()

	var (
		configPath string
		addr       string
		logLevel   string
	)

	root := &cobra.Command{
		Use:   "signalhub",
		Short: "WebSocket signaling server for WebRTC peer-to-peer sessions",
		Long: `signalhub coordinates WebRTC session negotiation: peers join named
rooms over a websocket connection, discover each other, and exchange
offer/answer/ICE-candidate frames routed to a target peer. Media never
touches the server.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootLog := log.New(logLevel)
			cfg, path, err := config.Load(bootLog, configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			logger := log.New(cfg.LogLevel)
			logger.Info().Str("config", path).Str("addr", cfg.Addr).Msg("starting signalhub")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.New(cfg, logger).Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	root.Flags().StringVar(&addr, "addr", defaults.Addr, "listen address")
	root.Flags().StringVar(&logLevel, "log-level", defaults.LogLevel, "log level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
