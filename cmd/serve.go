package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/studyy/internal/api"
	"github.com/abhisek/studyy/internal/catalog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the problem catalog over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid port %d", cfg.Server.Port)
		}

		cat, err := catalog.Builtin()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := slog.Default()
		srv := api.NewServer(cfg.Server, cat, logger)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("catalog service starting",
				"addr", cfg.Server.Addr(),
				"topics", len(cat.Topics()),
				"problems", cat.TotalProblems(),
			)
			return srv.Run(gctx)
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Debug("stop requested", "cause", context.Cause(gctx))
			return nil
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides PORT / config)")
}
