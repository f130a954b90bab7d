package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sahayata-app/gateway/internal/config"
	"github.com/sahayata-app/gateway/internal/downstream"
	"github.com/sahayata-app/gateway/internal/routes"
	"github.com/sahayata-app/gateway/internal/server"
	"github.com/sahayata-app/gateway/internal/storage"
	"github.com/sahayata-app/gateway/internal/storage/memory"
	"github.com/sahayata-app/gateway/internal/storage/sqlite"
	"github.com/sahayata-app/gateway/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.InitTracer("assist-gateway", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var store storage.Store
	switch cfg.Storage.Type {
	case "sqlite":
		s, err := sqlite.New(cfg.Storage.SQLite.Path)
		if err != nil {
			log.Fatalf("Failed to open sqlite store: %v", err)
		}
		defer s.Close()
		store = s
		logger.Info("using sqlite store", slog.String("path", cfg.Storage.SQLite.Path))
	default:
		store = memory.New()
		logger.Info("using in-memory store")
	}

	client := downstream.New(downstream.Config{
		BaseURL: cfg.Downstream.BaseURL,
		Timeout: cfg.Downstream.Timeout(),
		Retries: cfg.Downstream.Retries,
		Logger:  logger,
	})

	srv := server.New(cfg.Server.Port, logger)
	routes.New(client, cfg, store, logger).Register(srv.Router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case sig := <-sigCh:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("gateway shutdown complete")
}
