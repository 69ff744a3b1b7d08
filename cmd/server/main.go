// Command server runs the roster web application.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sman2ps/dapodik/internal/config"
	"github.com/sman2ps/dapodik/internal/core"
	"github.com/sman2ps/dapodik/internal/logging"
	"github.com/sman2ps/dapodik/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Values in .env win over the inherited environment.
	envLoaded := godotenv.Overload() == nil

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting roster server",
		"addr", cfg.Server.Addr(),
		"school", cfg.School.Name,
		"dotenv", envLoaded,
	)
	slog.Debug("effective configuration", "config", cfg.String())

	service := core.NewService(cfg.ServiceConfig())
	server := web.NewServer(service, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go service.StartSessionSweeper(ctx, cfg.Session.SweepInterval)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutdown requested")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if active := service.LimiterStatus().Active; active > 0 {
		slog.Info("draining imports", "active", active)
		if err := service.WaitForImports(shutdownCtx); err != nil {
			slog.Warn("imports still running at shutdown", "error", err)
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
