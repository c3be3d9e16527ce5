package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/solentra/enrichflow/config"
	"github.com/solentra/enrichflow/internal/app"
	"github.com/solentra/enrichflow/internal/logging"
	"github.com/solentra/enrichflow/internal/server"
)

const shutdownGrace = 10 * time.Second

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg := config.Load()
	logging.Init(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("[Server] Exiting", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx := context.Background()

	deps, err := app.Build(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer deps.Close()

	srv := server.New(deps.Pipeline, deps.Store, cfg.CORS, slog.Default())
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Server] Listening", slog.String("addr", cfg.HTTPAddr))
		errCh <- httpServer.ListenAndServe()
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stopChan:
		slog.Info("Shutting down server gracefully...", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
