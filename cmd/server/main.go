// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package main is the entry point for the Reelrank server.
//
// Reelrank serves per-user movie recommendations for a streaming
// platform. The serving path ranks unwatched titles by genre affinity
// derived from each user's liked history, falling back to catalog
// popularity for new users. An offline job segments the user base with
// k-means over behavioral features, choosing the segment count by
// silhouette score.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered defaults, config file, env vars (Koanf v2)
//  2. Database: DuckDB with the users/movies/watch_history schema
//  3. Authentication: JWT token manager
//  4. Recommendation engine and segmentation job
//  5. HTTP server: REST API under /api/v1
//  6. Supervisor tree: suture-managed HTTP and segmentation services
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (JWT_SECRET, DUCKDB_PATH, HTTP_PORT, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// Required settings:
//   - JWT_SECRET: 32+ character secret for token signing
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Stops the segmentation scheduler and closes the database
//
// # Example Usage
//
// Development with seeded demo data:
//
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export DUCKDB_PATH=:memory:
//	export SEED_MOCK_DATA=true
//	./reelrank
//
// Production:
//
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export DUCKDB_PATH=/data/reelrank.duckdb
//	./reelrank
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelrank/internal/api"
	"github.com/tomtom215/reelrank/internal/auth"
	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/database"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/recommend"
	"github.com/tomtom215/reelrank/internal/supervisor"
	"github.com/tomtom215/reelrank/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("addr", cfg.Server.Addr()).
		Bool("segmentation_enabled", cfg.Segmentation.Enabled).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.SeedMockData {
		logging.Info().Msg("Mock data seeding enabled")
		if err := db.SeedMockData(context.Background(), cfg.Database.SeedRandomSeed); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed mock data")
		}
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}

	engineCfg := &recommend.Config{
		DefaultTopN: cfg.Recommend.DefaultTopN,
		MaxTopN:     cfg.Recommend.MaxTopN,
	}
	engine, err := recommend.NewEngine(engineCfg, db, db, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	job, err := recommend.NewSegmentationJob(db, db, db, db,
		cfg.Segmentation.KMin, cfg.Segmentation.KMax,
		cfg.Segmentation.MaxIterations, cfg.Segmentation.Seed,
		logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize segmentation job")
	}

	apiServer := api.NewServer(cfg, db, engine, job, jwtManager)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           apiServer.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Suture logs through slog, so bridge it to zerolog.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Segmentation.Enabled {
		tree.AddMLService(services.NewSegmentService(job, services.SegmentServiceConfig{
			TrainOnStartup: cfg.Segmentation.TrainOnStartup,
			TrainInterval:  cfg.Segmentation.TrainInterval,
		}, logging.Logger()))
		logging.Info().
			Dur("train_interval", cfg.Segmentation.TrainInterval).
			Msg("Segmentation service added")
	} else {
		logging.Info().Msg("Periodic segmentation disabled; runs available via POST /api/v1/segmentation/run")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
