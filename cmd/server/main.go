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

	"github.com/mechvault/catalog/internal/admin"
	"github.com/mechvault/catalog/internal/cache"
	"github.com/mechvault/catalog/internal/catalog"
	"github.com/mechvault/catalog/internal/config"
	"github.com/mechvault/catalog/internal/logging"
	"github.com/mechvault/catalog/internal/sheet"
	"github.com/mechvault/catalog/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"cache_enabled", cfg.Cache.Enabled,
		"strict_errors", cfg.Sheet.StrictErrors,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	// Sheet client is the sole product source
	source := sheet.NewClient(cfg.Sheet)

	// Optional Redis snapshot cache
	opts := catalog.Options{Strict: cfg.Sheet.StrictErrors}
	var snapshot *cache.Redis
	if cfg.Cache.Enabled {
		snapshot, err = cache.New(cfg.Cache)
		if err != nil {
			slog.Warn("redis unavailable, continuing without snapshot cache", "error", err)
		} else {
			defer snapshot.Close()
			opts.Snapshot = snapshot
			slog.Info("snapshot cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
		}
	}

	service := catalog.NewService(source, opts)

	// Seed the admin product store from the live catalog; an unreachable
	// sheet means the dashboard starts empty.
	seed, err := service.Products(ctx)
	if err != nil {
		slog.Warn("could not seed admin store from sheet", "error", err)
	}
	products := admin.NewProductStore(seed)
	orders := admin.NewOrderStore()
	customers := admin.NewCustomerStore()

	server := web.NewServer(cfg, service, products, orders, customers)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
