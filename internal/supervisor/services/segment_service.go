// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// SegmentationRunner is the slice of the segmentation job this service
// drives. Satisfied by *recommend.SegmentationJob.
type SegmentationRunner interface {
	Run(ctx context.Context) (*recommend.SegmentationResult, error)
}

// SegmentServiceConfig holds scheduling settings for the offline
// segmentation loop.
type SegmentServiceConfig struct {
	// TrainOnStartup triggers a run as soon as the service starts.
	TrainOnStartup bool

	// TrainInterval is how often the job reruns.
	TrainInterval time.Duration
}

// SegmentService runs user segmentation on a schedule under suture
// supervision. A failed run is logged and retried at the next tick.
type SegmentService struct {
	job    SegmentationRunner
	config SegmentServiceConfig
	logger zerolog.Logger
	name   string
}

// NewSegmentService creates the scheduler around a segmentation job.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSegmentService(job SegmentationRunner, cfg SegmentServiceConfig, logger zerolog.Logger) *SegmentService {
	return &SegmentService{
		job:    job,
		config: cfg,
		logger: logger.With().Str("service", "segmentation").Logger(),
		name:   "segment-service",
	}
}

// Serve implements suture.Service.
func (s *SegmentService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("train_interval", s.config.TrainInterval).
		Msg("segmentation service starting")

	if s.config.TrainOnStartup {
		s.runOnce(ctx)
	}

	if s.config.TrainInterval <= 0 {
		s.config.TrainInterval = 24 * time.Hour
	}

	ticker := time.NewTicker(s.config.TrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("segmentation service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce executes a single run and absorbs its outcome. Scheduling
// errors never crash the service; supervision is for the loop itself.
func (s *SegmentService) runOnce(ctx context.Context) {
	result, err := s.job.Run(ctx)
	switch {
	case errors.Is(err, recommend.ErrSegmentationInProgress):
		s.logger.Debug().Msg("segmentation already running, skipping scheduled run")
	case err != nil:
		s.logger.Warn().Err(err).Msg("segmentation run failed (will retry on schedule)")
	default:
		s.logger.Info().
			Int("k", result.K).
			Float64("silhouette", result.Silhouette).
			Int("users", result.Users).
			Dur("duration", result.Duration).
			Msg("segmentation run complete")
	}
}

// String returns the service name for logging.
func (s *SegmentService) String() string {
	return s.name
}
