package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-voz/analysis"
	"github.com/RyanBlaney/sonido-voz/logging"
	"github.com/RyanBlaney/sonido-voz/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			analyzer := analysis.NewAnalyzer(a.cfg.PipelineConfig())
			srv := server.NewServer(&server.Config{
				ListenAddr:      a.cfg.Server.ListenAddr,
				MaxPayloadChars: a.cfg.Server.MaxPayloadChars,
				ShutdownTimeout: time.Duration(a.cfg.Server.ShutdownTimeout) * time.Second,
			}, analyzer)

			if err := srv.Start(ctx); err != nil {
				return err
			}
			logging.Info("server stopped")
			return nil
		},
	}
}
