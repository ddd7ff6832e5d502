// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package storage

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/reelrank/internal/recommend/features"
)

func TestSegmentModelRoundTrip(t *testing.T) {
	// Awkward floats on purpose: assignment decisions depend on exact values.
	model := &SegmentModel{
		FittedAt:    time.Date(2026, 8, 1, 3, 0, 0, 0, time.UTC),
		Seed:        42,
		K:           3,
		Silhouette:  0.6180339887498949,
		Users:       250,
		UserColumns: []string{"avg_rating", "watch_count", "avg_duration", "total_duration"},
		UserParams: features.Params{
			Mean:   []float64{3.0000000000000004, 12.5, 104.7, 1308.75},
			StdDev: []float64{0.1, math.SmallestNonzeroFloat64, 1e-9, 250.25},
		},
		Centroids: [][]float64{
			{0.1, -0.2, 0.3, -0.4},
			{1.0 / 3.0, -2.0 / 3.0, 0, 0},
			{-1.5, 2.5, -3.5, 4.5},
		},
		TitleParams: features.Params{
			Mean:   []float64{2003.2, 6.9},
			StdDev: []float64{8.1, 1.2},
		},
		Vocabulary: features.Vocabulary{"Comedy", "Drama", "unknown"},
	}

	data, err := model.Encode()
	require.NoError(t, err)

	decoded, err := DecodeSegmentModel(data)
	require.NoError(t, err)
	assert.Equal(t, model, decoded)
}

func TestDecodeSegmentModelRejectsGarbage(t *testing.T) {
	_, err := DecodeSegmentModel([]byte("{not json"))
	assert.Error(t, err)
}
