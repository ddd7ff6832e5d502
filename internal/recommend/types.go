// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/reelrank/internal/models"
	"github.com/tomtom215/reelrank/internal/recommend/storage"
)

// LikedRatingThreshold is the minimum rating at which a watch event
// counts as a positive genre signal. Fixed policy, not a per-call knob.
const LikedRatingThreshold = 4

// topGenreCount bounds the genre candidate pool in the warm state.
const topGenreCount = 3

// RankingSource identifies which policy produced a response.
type RankingSource string

const (
	// SourceGenreAffinity ranks candidates from the user's liked genres.
	SourceGenreAffinity RankingSource = "genre_affinity"
	// SourcePopularity ranks the whole catalog by quality rating.
	SourcePopularity RankingSource = "popularity"
)

// Request describes one recommendation call.
type Request struct {
	// UserID is the user to recommend for.
	UserID int `json:"user_id"`

	// TopN is the maximum number of titles to return. Zero or negative
	// falls back to the engine default; values above the configured
	// maximum are clamped.
	TopN int `json:"top_n"`

	// SegmentID is the user's offline segment, if the caller has one.
	// Accepted so segment-aware scoring can be added behind the same
	// surface; no current policy consumes it.
	SegmentID *int `json:"segment_id,omitempty"`
}

// Response is the outcome of one recommendation call.
type Response struct {
	UserID int `json:"user_id"`

	// Source is the policy that ranked Items.
	Source RankingSource `json:"source"`

	// ColdStart reports whether the user had no recorded history.
	ColdStart bool `json:"cold_start"`

	// TopGenres is the genre pool the warm state ranked over, in
	// affinity order. Empty for popularity responses.
	TopGenres []string `json:"top_genres,omitempty"`

	// Items are the recommended titles, best first, none watched.
	Items []models.Movie `json:"items"`

	// SkippedEvents counts history rows whose movie was missing from
	// the catalog and therefore contributed nothing to affinity.
	SkippedEvents int `json:"skipped_events,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// CatalogReader supplies the title catalog. The engine treats the
// result as a read-only snapshot for the duration of one call.
type CatalogReader interface {
	AllMovies(ctx context.Context) ([]models.Movie, error)
}

// HistoryReader supplies watch events: per-user for serving, the full
// population for offline fitting.
type HistoryReader interface {
	UserHistory(ctx context.Context, userID int) ([]models.WatchEvent, error)
	AllHistory(ctx context.Context) ([]models.WatchEvent, error)
}

// UserReader supplies the user population for offline fitting.
type UserReader interface {
	AllUserIDs(ctx context.Context) ([]int, error)
}

// ModelStore persists the artifacts of an offline segmentation run.
type ModelStore interface {
	SaveSegmentation(ctx context.Context, model *storage.SegmentModel, assignments []storage.Assignment) error
}
