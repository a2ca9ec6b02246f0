package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/debatestats/gateway/internal/api/handler"
	"github.com/debatestats/gateway/internal/cache"
	"github.com/debatestats/gateway/internal/config"
	"github.com/debatestats/gateway/internal/feature"
	"github.com/debatestats/gateway/internal/store"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(src store.Source, appCache cache.Store, cfg *config.Config, features *feature.Set, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag", "Location"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(src, appCache, cfg, features, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 procedure routers
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/dataset", func(r chi.Router) {
			r.Get("/", h.ListDatasets)
			r.Get("/{slug}", h.GetDataset)
		})

		r.Route("/team/{teamID}", func(r chi.Router) {
			r.Get("/", h.GetTeam)
			r.Get("/results", h.GetTeamResults)
		})

		r.Route("/judge/{judgeID}", func(r chi.Router) {
			r.Get("/", h.GetJudge)
			r.Get("/record", h.GetJudgeRecord)
		})

		r.Get("/feature", h.GetFeatures)
		r.Post("/feedback", h.PostFeedback)

		// Rendered tables
		r.Route("/tables", func(r chi.Router) {
			r.Get("/team/{teamID}/career", h.CareerTable)
			r.Get("/team/{teamID}/tournaments", h.TournamentsTable)
			r.Get("/judge/{judgeID}/record", h.JudgeRecordTable)
		})
	})

	return r
}
