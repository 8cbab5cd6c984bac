package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/domain/coach"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/config"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/logging"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
				if err := cfg.Validate(); err != nil {
					return usageError{err: err}
				}
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides PORT)")
	return cmd
}

// serve runs until SIGINT/SIGTERM or ctx cancellation.
func serve(parent context.Context, cfg config.Config) error {
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.Host
	srvCfg.Port = cfg.Port
	srvCfg.WriteTimeout = writeTimeout(cfg.ProviderTimeout, srvCfg.WriteTimeout)

	srv := server.NewServer(a.handler, srvCfg, logger, a.closers...)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}

// writeTimeout must outlast one attempt per provider plus encoding slack.
func writeTimeout(attempt, floor time.Duration) time.Duration {
	if attempt <= 0 {
		return floor
	}
	need := attempt*time.Duration(len(coach.FallbackOrder)) + 15*time.Second
	if need > floor {
		return need
	}
	return floor
}
