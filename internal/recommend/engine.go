// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/metrics"
	"github.com/tomtom215/reelrank/internal/models"
)

// Engine is the online recommendation path. It holds no mutable state
// between requests and is safe for concurrent use.
type Engine struct {
	config  *Config
	catalog CatalogReader
	history HistoryReader
	logger  zerolog.Logger
}

// NewEngine creates a recommendation engine over the given collaborators.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, catalog CatalogReader, history HistoryReader, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if catalog == nil || history == nil {
		return nil, fmt.Errorf("catalog and history readers are required")
	}

	return &Engine{
		config:  cfg,
		catalog: catalog,
		history: history,
		logger:  logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Recommend produces a ranked list of titles the user has not watched,
// at most TopN long. A user with no history gets the popularity
// ranking; otherwise candidates come from the user's top liked genres.
// An empty catalog yields an empty list, not an error.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	topN := e.config.clampTopN(req.TopN)

	catalog, err := e.catalog.AllMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	events, err := e.history.UserHistory(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load history for user %d: %w", req.UserID, err)
	}

	resp := e.rank(req, catalog, events, topN)
	resp.GeneratedAt = time.Now().UTC()

	metrics.RecordRecommendation(string(resp.Source), time.Since(start))
	if resp.SkippedEvents > 0 {
		metrics.RecommendationSkippedEvents.Add(float64(resp.SkippedEvents))
	}

	e.logger.Debug().
		Int("user_id", req.UserID).
		Str("source", string(resp.Source)).
		Bool("cold_start", resp.ColdStart).
		Int("items", len(resp.Items)).
		Int("skipped_events", resp.SkippedEvents).
		Msg("Recommendation served")

	return resp, nil
}

// rank is the pure core of Recommend: no clock, no I/O.
func (e *Engine) rank(req Request, catalog []models.Movie, events []models.WatchEvent, topN int) *Response {
	resp := &Response{
		UserID:    req.UserID,
		ColdStart: len(events) == 0,
		Items:     []models.Movie{},
	}

	if len(catalog) == 0 {
		resp.Source = SourcePopularity
		return resp
	}

	watched := make(map[int]struct{}, len(events))
	for i := range events {
		watched[events[i].MovieID] = struct{}{}
	}

	if resp.ColdStart {
		resp.Source = SourcePopularity
		resp.Items = rankByRating(catalog, nil, topN)
		return resp
	}

	byID := make(map[int]*models.Movie, len(catalog))
	for i := range catalog {
		byID[catalog[i].MovieID] = &catalog[i]
	}

	topGenres, skipped := e.topLikedGenres(req.UserID, events, byID)
	resp.SkippedEvents = skipped

	if len(topGenres) == 0 {
		// History without liked titles ranks like a cold start, minus
		// anything already watched.
		resp.Source = SourcePopularity
		resp.Items = rankByRating(catalog, watched, topN)
		return resp
	}

	genreSet := make(map[string]struct{}, len(topGenres))
	for _, g := range topGenres {
		genreSet[g] = struct{}{}
	}

	var candidates []models.Movie
	for i := range catalog {
		m := &catalog[i]
		if _, ok := watched[m.MovieID]; ok {
			continue
		}
		for _, g := range m.Genres() {
			if _, ok := genreSet[g]; ok {
				candidates = append(candidates, *m)
				break
			}
		}
	}

	resp.Source = SourceGenreAffinity
	resp.TopGenres = topGenres
	resp.Items = rankByRating(candidates, nil, topN)
	return resp
}

// topLikedGenres counts genre votes from events rated at or above the
// liked threshold and returns up to three genres by count descending.
// Ties keep first-encountered order, which makes the result a pure
// function of event order. Events whose movie is missing from the
// catalog are skipped and counted, not fatal.
func (e *Engine) topLikedGenres(userID int, events []models.WatchEvent, byID map[int]*models.Movie) ([]string, int) {
	counts := make(map[string]int)
	var order []string
	skipped := 0

	for i := range events {
		ev := &events[i]
		if !ev.Rated() || *ev.Rating < LikedRatingThreshold {
			continue
		}
		movie, ok := byID[ev.MovieID]
		if !ok {
			skipped++
			intErr := &DataIntegrityError{Entity: "movie", ID: ev.MovieID}
			e.logger.Warn().
				Int("user_id", userID).
				Err(intErr).
				Msg("Skipping watch event with unresolved movie")
			continue
		}
		for _, g := range movie.Genres() {
			if _, seen := counts[g]; !seen {
				order = append(order, g)
			}
			counts[g]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topGenreCount {
		order = order[:topGenreCount]
	}
	return order, skipped
}

// rankByRating orders titles by catalog rating descending, ties by
// ascending movie id, drops anything in exclude, and returns at most
// topN of them.
func rankByRating(titles []models.Movie, exclude map[int]struct{}, topN int) []models.Movie {
	ranked := make([]models.Movie, 0, len(titles))
	for i := range titles {
		if _, ok := exclude[titles[i].MovieID]; ok {
			continue
		}
		ranked = append(ranked, titles[i])
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].MovieID < ranked[j].MovieID
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
