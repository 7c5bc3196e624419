package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Yarielito06/humanizer-app/internal/prompt"
	"github.com/Yarielito06/humanizer-app/internal/server"
)

const shutdownTimeout = 10 * time.Second

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the HTTP server exposing POST /api/humanize, GET /api/health,
GET /api/models and GET /metrics.

Examples:
  # Start with defaults and environment configuration
  humanize serve

  # Custom config and port
  humanize serve --config /etc/humanize/config.yaml --port 9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "override listen port")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(os.Stderr)
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prompts, err := prompt.Load(cfg.PromptPath)
	if err != nil {
		return err
	}
	if cfg.WatchPrompt && prompts.Path() != "" {
		go func() {
			if err := prompts.Watch(ctx, slog.Default()); err != nil {
				slog.Error("prompt watcher stopped", "error", err)
			}
		}()
	}

	app, err := server.Build(cfg, prompts, useMock, Version)
	if err != nil {
		return err
	}
	if useMock {
		slog.Info("mode: mock provider enabled")
	}
	if cfg.CORSOrigin == "" {
		slog.Info("cors: disabled (no cors_origin configured)")
	}

	srv := server.NewHTTPServer(cfg.Port, app.Handler)
	errCh := make(chan error, 1)
	go func() {
		slog.Info("humanize api listening", "addr", srv.Addr, "provider", app.Generator.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
