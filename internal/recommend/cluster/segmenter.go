// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package cluster

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/tomtom215/reelrank/internal/logging"
)

// Segmenter fits user segmentation models over normalized feature
// vectors. Zero-valued fields are not usable; construct with New.
type Segmenter struct {
	kMin          int
	kMax          int
	maxIterations int
	seed          int64
}

// New validates the search range and returns a Segmenter. kMin must be
// at least 2 (a single segment carries no information), kMax at least
// kMin, and maxIterations positive.
func New(kMin, kMax, maxIterations int, seed int64) (*Segmenter, error) {
	if kMin < 2 {
		return nil, fmt.Errorf("kMin must be >= 2, got %d", kMin)
	}
	if kMax < kMin {
		return nil, fmt.Errorf("kMax (%d) must be >= kMin (%d)", kMax, kMin)
	}
	if maxIterations < 1 {
		return nil, fmt.Errorf("maxIterations must be >= 1, got %d", maxIterations)
	}
	return &Segmenter{kMin: kMin, kMax: kMax, maxIterations: maxIterations, seed: seed}, nil
}

// Selection is the outcome of a segment-count search.
type Selection struct {
	K      int
	Score  float64
	Scores map[int]float64 // silhouette per valid candidate k
}

// SelectK searches [kMin, kMax] for the segment count with the best
// mean silhouette score, ties broken by the smallest k. Candidate
// trials run concurrently; each derives its RNG from seed+k, so the
// result does not depend on scheduling. When no candidate yields a
// valid clustering (too few vectors, too few distinct vectors, or
// degenerate scores throughout), SelectK fails with a *ClusteringError.
func (s *Segmenter) SelectK(ctx context.Context, vectors [][]float64) (Selection, error) {
	type trial struct {
		score float64
		valid bool
	}

	trials := make([]trial, s.kMax-s.kMin+1)
	var wg sync.WaitGroup
	for k := s.kMin; k <= s.kMax; k++ {
		if k > len(vectors) {
			break
		}
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(s.seed + int64(k))) //nolint:gosec // reproducibility, not cryptography
			model, err := kMeans(ctx, vectors, k, s.maxIterations, rng)
			if err != nil {
				logging.Debug().Int("k", k).Err(err).Msg("Segment count candidate rejected")
				return
			}
			score, ok := silhouetteScore(vectors, model.Labels, k)
			if !ok {
				return
			}
			trials[k-s.kMin] = trial{score: score, valid: true}
		}(k)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Selection{}, err
	}

	sel := Selection{K: -1, Scores: make(map[int]float64)}
	for k := s.kMin; k <= s.kMax; k++ {
		t := trials[k-s.kMin]
		if !t.valid {
			continue
		}
		sel.Scores[k] = t.score
		if sel.K == -1 || t.score > sel.Score {
			sel.K, sel.Score = k, t.score
		}
	}
	if sel.K == -1 {
		return Selection{}, &ClusteringError{
			Reason: fmt.Sprintf("no valid clustering for any k in [%d, %d] over %d vectors", s.kMin, s.kMax, len(vectors)),
		}
	}

	logging.Debug().
		Int("chosen_k", sel.K).
		Float64("silhouette", sel.Score).
		Int("candidates", len(sel.Scores)).
		Msg("Segment count selected")

	return sel, nil
}

// Fit clusters the population into exactly k segments. The RNG is
// derived the same way as the SelectK trial for that k, so fitting the
// selected k reproduces the scored partition.
func (s *Segmenter) Fit(ctx context.Context, vectors [][]float64, k int) (*Model, error) {
	if k < 1 || k > len(vectors) {
		return nil, &ClusteringError{Reason: fmt.Sprintf("k=%d out of range for %d vectors", k, len(vectors))}
	}

	rng := rand.New(rand.NewSource(s.seed + int64(k))) //nolint:gosec // reproducibility, not cryptography
	model, err := kMeans(ctx, vectors, k, s.maxIterations, rng)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &ClusteringError{Reason: fmt.Sprintf("fit with k=%d", k), Err: err}
	}
	return model, nil
}
