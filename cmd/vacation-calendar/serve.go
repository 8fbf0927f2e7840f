package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/username/vacation-calendar/internal/server"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the holiday API and calendar page",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			undo, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Infof))
			defer undo()
			if err != nil {
				logger.Warn("Failed to set GOMAXPROCS", zap.Error(err))
			}

			provider, err := initializeProvider(cfg)
			if err != nil {
				return err
			}

			return server.New(cfg, provider, logger).Run(context.Background())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}
