// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/metrics"
	"github.com/tomtom215/reelrank/internal/recommend/cluster"
	"github.com/tomtom215/reelrank/internal/recommend/features"
	"github.com/tomtom215/reelrank/internal/recommend/storage"
)

// SegmentationResult summarizes one completed offline run.
type SegmentationResult struct {
	K           int           `json:"k"`
	Silhouette  float64       `json:"silhouette"`
	Users       int           `json:"users"`
	Titles      int           `json:"titles"`
	Duration    time.Duration `json:"duration"`
	CompletedAt time.Time     `json:"completed_at"`
}

// SegmentationStatus is a point-in-time view of the job for callers
// that poll it.
type SegmentationStatus struct {
	Running    bool                `json:"running"`
	LastResult *SegmentationResult `json:"last_result,omitempty"`
	LastError  string              `json:"last_error,omitempty"`
}

// SegmentationJob fits the user segmentation model: features →
// normalization → segment-count selection → final fit → persistence.
// At most one run executes at a time; a second caller gets
// ErrSegmentationInProgress instead of queueing.
type SegmentationJob struct {
	users     UserReader
	history   HistoryReader
	catalog   CatalogReader
	store     ModelStore
	segmenter *cluster.Segmenter
	seed      int64
	logger    zerolog.Logger

	runMu sync.Mutex // held for the duration of one run

	stateMu sync.RWMutex
	running bool
	last    *SegmentationResult
	lastErr error
}

// NewSegmentationJob wires the offline pipeline. kMin, kMax and
// maxIterations bound the segment-count search; seed fixes all
// randomness so repeated runs on the same data fit the same model.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSegmentationJob(users UserReader, history HistoryReader, catalog CatalogReader, store ModelStore,
	kMin, kMax, maxIterations int, seed int64, logger zerolog.Logger) (*SegmentationJob, error) {
	if users == nil || history == nil || catalog == nil || store == nil {
		return nil, fmt.Errorf("all collaborators are required")
	}

	segmenter, err := cluster.New(kMin, kMax, maxIterations, seed)
	if err != nil {
		return nil, fmt.Errorf("invalid segmentation settings: %w", err)
	}

	return &SegmentationJob{
		users:     users,
		history:   history,
		catalog:   catalog,
		store:     store,
		segmenter: segmenter,
		seed:      seed,
		logger:    logger.With().Str("component", "segmentation").Logger(),
	}, nil
}

// Run executes one full segmentation pass. Structural data problems
// (no users, empty catalog, degenerate clustering) fail the run and
// are surfaced to the caller; nothing is persisted on failure.
func (j *SegmentationJob) Run(ctx context.Context) (*SegmentationResult, error) {
	if !j.runMu.TryLock() {
		metrics.SegmentationRuns.WithLabelValues("skipped").Inc()
		return nil, ErrSegmentationInProgress
	}
	defer j.runMu.Unlock()

	j.setRunning(true)
	defer j.setRunning(false)

	start := time.Now()
	result, err := j.run(ctx)
	metrics.RecordSegmentationRun(time.Since(start), resultK(result), resultSilhouette(result), err)
	j.recordOutcome(result, err)

	if err != nil {
		j.logger.Error().Err(err).Msg("Segmentation run failed")
		return nil, err
	}

	j.logger.Info().
		Int("k", result.K).
		Float64("silhouette", result.Silhouette).
		Int("users", result.Users).
		Int("titles", result.Titles).
		Dur("duration", result.Duration).
		Msg("Segmentation run completed")

	return result, nil
}

func (j *SegmentationJob) run(ctx context.Context) (*SegmentationResult, error) {
	start := time.Now()

	userIDs, err := j.users.AllUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	sort.Ints(userIDs)

	events, err := j.history.AllHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load watch history: %w", err)
	}

	movies, err := j.catalog.AllMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	titleVectors, vocabulary, err := features.BuildTitleFeatures(movies)
	if err != nil {
		return nil, &DataIntegrityError{Entity: "catalog", Err: err}
	}
	titleParams, err := fitTitleParams(titleVectors)
	if err != nil {
		return nil, fmt.Errorf("fit title normalization: %w", err)
	}

	userVectors := features.BuildUserFeatures(userIDs, events)
	matrix := make([][]float64, len(userIDs))
	for i, id := range userIDs {
		matrix[i] = userVectors[id].Values()
	}

	userParams, err := features.Fit(matrix)
	if err != nil {
		return nil, fmt.Errorf("fit user normalization: %w", err)
	}
	normalized, err := features.TransformAll(matrix, userParams)
	if err != nil {
		return nil, fmt.Errorf("normalize user features: %w", err)
	}

	selection, err := j.segmenter.SelectK(ctx, normalized)
	if err != nil {
		return nil, err
	}
	model, err := j.segmenter.Fit(ctx, normalized, selection.K)
	if err != nil {
		return nil, err
	}

	assignments := make([]storage.Assignment, len(userIDs))
	for i, id := range userIDs {
		assignments[i] = storage.Assignment{UserID: id, SegmentID: model.Labels[i]}
	}

	runID := uuid.NewString()
	artifact := &storage.SegmentModel{
		RunID:       runID,
		FittedAt:    time.Now().UTC(),
		Seed:        j.seed,
		K:           selection.K,
		Silhouette:  selection.Score,
		Users:       len(userIDs),
		UserColumns: features.UserFeatureColumns,
		UserParams:  userParams,
		Centroids:   model.Centroids,
		TitleParams: titleParams,
		Vocabulary:  vocabulary,
	}
	if err := j.store.SaveSegmentation(ctx, artifact, assignments); err != nil {
		return nil, fmt.Errorf("persist segmentation model: %w", err)
	}
	j.logger.Debug().Str("run_id", runID).Int("k", selection.K).Msg("Segmentation model persisted")

	return &SegmentationResult{
		K:           selection.K,
		Silhouette:  selection.Score,
		Users:       len(userIDs),
		Titles:      len(movies),
		Duration:    time.Since(start),
		CompletedAt: time.Now().UTC(),
	}, nil
}

// Status reports whether a run is active and the outcome of the last one.
func (j *SegmentationJob) Status() SegmentationStatus {
	j.stateMu.RLock()
	defer j.stateMu.RUnlock()

	status := SegmentationStatus{Running: j.running, LastResult: j.last}
	if j.lastErr != nil {
		status.LastError = j.lastErr.Error()
	}
	return status
}

func (j *SegmentationJob) setRunning(running bool) {
	j.stateMu.Lock()
	j.running = running
	j.stateMu.Unlock()
}

func (j *SegmentationJob) recordOutcome(result *SegmentationResult, err error) {
	j.stateMu.Lock()
	defer j.stateMu.Unlock()

	j.lastErr = err
	if err == nil {
		j.last = result
	}
}

// fitTitleParams fits normalization over title vectors in movie-id
// order so the fit is independent of map iteration.
func fitTitleParams(vectors map[int]features.TitleVector) (features.Params, error) {
	ids := make([]int, 0, len(vectors))
	for id := range vectors {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	matrix := make([][]float64, len(ids))
	for i, id := range ids {
		matrix[i] = vectors[id].Values
	}
	return features.Fit(matrix)
}

func resultK(r *SegmentationResult) int {
	if r == nil {
		return 0
	}
	return r.K
}

func resultSilhouette(r *SegmentationResult) float64 {
	if r == nil {
		return 0
	}
	return r.Silhouette
}
