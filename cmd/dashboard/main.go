package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/piggdekk-dashboard/internal/adapter/http"
	"github.com/couchcryptid/piggdekk-dashboard/internal/adapter/kommuneinfo"
	"github.com/couchcryptid/piggdekk-dashboard/internal/config"
	"github.com/couchcryptid/piggdekk-dashboard/internal/dataset"
	"github.com/couchcryptid/piggdekk-dashboard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Municipality registry (feature-flagged via REGISTRY_ENABLED).
	var registry kommuneinfo.Source
	if cfg.RegistryEnabled {
		client := kommuneinfo.NewClient(cfg.RegistryURL, cfg.RegistryTimeout, logger, metrics)
		registry = kommuneinfo.NewCachedSource(client, cfg.RegistryCacheTTL, nil)
		metrics.RegistryEnabled.Set(1)
		logger.Info("municipality registry enabled", "url", cfg.RegistryURL, "cache_ttl", cfg.RegistryCacheTTL)
	} else {
		metrics.RegistryEnabled.Set(0)
		logger.Info("municipality registry disabled")
	}

	store := dataset.NewStore(cfg, nil, logger, metrics)

	// Warm the cache so the first request doesn't pay the build cost. A
	// failure here is logged but not fatal: the store retries per request
	// and /readyz reports the state.
	if _, err := store.Dataset(); err != nil {
		logger.Error("initial dataset load failed", "error", err)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, store, registry, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
