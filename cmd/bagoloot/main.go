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

	"github.com/bagoloot/bagoloot/db"
	"github.com/bagoloot/bagoloot/internal/config"
	"github.com/bagoloot/bagoloot/internal/logging"
	"github.com/bagoloot/bagoloot/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded", "error", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging)
	gin.SetMode(cfg.Server.Mode)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := db.ConnectDatabase(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		return err
	}
	defer db.CloseDatabase()

	if err := db.MigrateDatabase(); err != nil {
		return err
	}

	if cfg.Seed.Enabled {
		if err := db.SeedDatabase(cfg.Seed, cfg.Auth.Role); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.NewRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", srv.Addr, "driver", cfg.Database.Driver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
