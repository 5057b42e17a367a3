package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"roamio/gazetteer/internal/api"
	"roamio/gazetteer/internal/config"
	"roamio/gazetteer/internal/logging"
	"roamio/gazetteer/internal/metrics"
	"roamio/gazetteer/internal/middleware"
	"roamio/gazetteer/internal/store"
)

// RegisterRoutes builds the admin server router: health, Prometheus
// metrics, and the key-guarded seed trigger endpoints.
func RegisterRoutes(cfg config.ServerConfig, s store.Store, runner api.SeedRunner, metricsReg *metrics.MetricsRegistry, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-API-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("router initialized with metrics and logging middleware")

	r.Get("/healthCheck", api.HealthCheckHandler(s, upSince))
	r.Handle("/metrics", promhttp.Handler())

	seedHandler := api.NewSeedHandler(runner)

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.APIKeyMiddleware(cfg.APIKey))
		r.Post("/seed", seedHandler.TriggerSeed())
		r.Get("/seed/status", seedHandler.SeedStatus())
		r.Get("/collections", api.CollectionsHandler(s))
	})

	return r
}
