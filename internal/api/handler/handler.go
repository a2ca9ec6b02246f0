// Package handler provides HTTP handlers for all API endpoints.
// Handlers read through store.Source with no service layer in between.
// Postgres functions return complete JSON; handlers pass raw bytes through.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/debatestats/gateway/internal/api/respond"
	"github.com/debatestats/gateway/internal/cache"
	"github.com/debatestats/gateway/internal/config"
	"github.com/debatestats/gateway/internal/feature"
	"github.com/debatestats/gateway/internal/store"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	src      store.Source
	cache    cache.Store
	cfg      *config.Config
	features *feature.Set
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(src store.Source, c cache.Store, cfg *config.Config, features *feature.Set, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		src:      src,
		cache:    c,
		cfg:      cfg,
		features: features,
		logger:   logger,
	}
}

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func validID(id string) bool {
	return idPattern.MatchString(id)
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and available optimizations.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Debate Stats Gateway",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"optimizations": []string{
			"pgxpool_connection_pooling",
			"prepared_statements",
			"postgres_json_passthrough",
			"gzip_compression",
			"response_cache",
			"etag_support",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.src.Ping(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns response cache statistics for the active backend.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(r.Context()),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// passthrough serves a cached JSON document, loading it with fetch on a miss.
func (h *Handler) passthrough(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, what string, fetch func(context.Context) ([]byte, error)) {
	if data, etag, ok := h.cache.Get(r.Context(), key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	raw, err := fetch(r.Context())
	if err != nil {
		h.dataError(w, err, what)
		return
	}

	etag := h.cache.Set(r.Context(), key, raw, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, raw, etag, ttl, false)
}

// dataError maps a store error to a response.
func (h *Handler) dataError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", what+" not found")
		return
	}
	h.logger.Error("Failed to load data", "what", what, "error", err)
	respond.WriteError(w, http.StatusInternalServerError, "DB_ERROR", "Failed to load "+what)
}
