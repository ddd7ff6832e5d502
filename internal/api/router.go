// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package api implements the HTTP surface: authentication, catalog
// browsing, watch history, recommendations, and the segmentation job
// controls. All endpoints speak the models.APIResponse envelope.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelrank/internal/auth"
	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/database"
	"github.com/tomtom215/reelrank/internal/metrics"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// Server holds the handler dependencies.
type Server struct {
	cfg    *config.Config
	db     *database.DB
	engine *recommend.Engine
	job    *recommend.SegmentationJob
	jwt    *auth.JWTManager
}

// NewServer creates the API server over its collaborators.
func NewServer(cfg *config.Config, db *database.DB, engine *recommend.Engine,
	job *recommend.SegmentationJob, jwt *auth.JWTManager) *Server {
	return &Server{cfg: cfg, db: db, engine: engine, job: job, jwt: jwt}
}

// Routes builds the full route tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(httprate.Limit(
		s.cfg.Security.RateLimitReqs,
		s.cfg.Security.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			respondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests", nil)
		}),
	))

	r.Get("/health/live", s.handleHealthLive)
	r.Get("/health/ready", s.handleHealthReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(securityHeaders)
		// Credential endpoints get a tighter budget than the global limit.
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.jwt.Middleware)
			r.Get("/me", s.handleMe)
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(securityHeaders)
		r.Use(prometheusMetrics)
		r.Use(s.jwt.Middleware)

		r.Get("/movies", s.handleListMovies)
		r.Get("/movies/{movieID}", s.handleGetMovie)
		r.Post("/movies/rate", s.handleRateMovie)

		r.Get("/history", s.handleHistory)

		r.Get("/preferences", s.handleGetPreferences)
		r.Put("/preferences", s.handlePutPreferences)

		r.Get("/recommendations", s.handleRecommendations)

		r.Get("/segmentation/status", s.handleSegmentationStatus)
		r.Post("/segmentation/run", s.handleSegmentationRun)
	})

	return r
}
