// Command api is the debate statistics gateway server.
//
// Usage:
//
//	debatestats-api
//	API_PORT=8080 debatestats-api

// @title Debate Stats Gateway
// @version 1.0.0
// @description Debate statistics API. Profiles and results are JSON passthrough from Postgres; table endpoints render responsive result tables as HTML, JSON, text or CSV.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Debate Stats
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/debatestats/gateway/internal/api"
	"github.com/debatestats/gateway/internal/cache"
	"github.com/debatestats/gateway/internal/config"
	"github.com/debatestats/gateway/internal/db"
	"github.com/debatestats/gateway/internal/feature"
	"github.com/debatestats/gateway/internal/listener"
	"github.com/debatestats/gateway/internal/maintenance"
	"github.com/debatestats/gateway/internal/store"

	_ "github.com/debatestats/gateway/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	features, err := feature.Load(cfg.FeaturesFile)
	if err != nil {
		logger.Error("Failed to load feature flags", "file", cfg.FeaturesFile, "error", err)
		os.Exit(1)
	}
	logger.Info("Feature flags loaded", "file", cfg.FeaturesFile, "count", len(features.List()))

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize cache", "error", err)
		os.Exit(1)
	}
	defer closeCache()
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "redis", cfg.RedisURL != "")

	// Start LISTEN/NOTIFY consumer for dataset updates
	go listener.Start(ctx, cfg.DatabaseURL, appCache, logger)

	// Start maintenance tickers (view refresh, cache eviction)
	mcfg := maintenance.DefaultConfig()
	mcfg.RefreshInterval = cfg.RefreshInterval
	go maintenance.Start(ctx, pool, appCache, mcfg, logger)

	// Create router
	router := api.NewRouter(store.NewPGSource(pool), appCache, cfg, features, logger)

	// Create HTTP server
	addr := cfg.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Debate Stats Gateway",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

// newCache selects Redis when REDIS_URL is set and caching is enabled,
// otherwise the in-process cache.
func newCache(ctx context.Context, cfg *config.Config) (cache.Store, func(), error) {
	if cfg.CacheEnabled && cfg.RedisURL != "" {
		rs, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	}
	mem := cache.New(cfg.CacheEnabled)
	return mem, mem.Close, nil
}
