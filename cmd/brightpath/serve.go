package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brightpath-ai/brightpath/pkg/config"
	"github.com/brightpath-ai/brightpath/pkg/ledger"
	"github.com/brightpath-ai/brightpath/pkg/server"
	"github.com/brightpath-ai/brightpath/pkg/session"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the content generation HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, err := newLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			gen, store, cleanup, err := buildCore(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			sessions := session.NewStore(cfg.Session.GapTimeout, func() *ledger.Ledger {
				return ledger.New(cfg.Cost.SessionLimitUSD, cfg.Cost.LifetimeLimitUSD, cfg.Cost.Prices, logger)
			}, logger)

			srv := server.New(cfg.Listen, gen, store, sessions, logger)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("starting brightpath server",
				zap.String("listen", cfg.Listen),
				zap.String("config", configPath),
			)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "brightpath.yaml", "path to config file")
	return cmd
}
