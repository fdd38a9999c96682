package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"daily-diet/config"
	"daily-diet/handlers"
	"daily-diet/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer store.Close()

	logger.Info("database initialized successfully", "client", cfg.DatabaseClient)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: handlers.NewRouter(store, cfg, logger),
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
	logger.Info("server stopped")
}

func openStore(cfg *config.Config) (*repository.Store, error) {
	switch cfg.DatabaseClient {
	case config.ClientSQLite:
		return repository.NewSQLiteStore(cfg.DatabaseURL)
	case config.ClientPostgres:
		return repository.NewPostgresStore(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database client %q", cfg.DatabaseClient)
	}
}
