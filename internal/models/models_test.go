// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieGenres(t *testing.T) {
	tests := []struct {
		name  string
		genre string
		want  []string
	}{
		{"single", "Drama", []string{"Drama"}},
		{"multiple", "Drama,Comedy", []string{"Drama", "Comedy"}},
		{"with spaces", "Drama, Comedy , Thriller", []string{"Drama", "Comedy", "Thriller"}},
		{"empty", "", []string{UnknownGenre}},
		{"whitespace only", "   ", []string{UnknownGenre}},
		{"stray commas", ",,", []string{UnknownGenre}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Movie{Genre: tt.genre}
			assert.Equal(t, tt.want, m.Genres())
		})
	}
}

func TestWatchEventRated(t *testing.T) {
	rating := 4
	rated := WatchEvent{Rating: &rating}
	unrated := WatchEvent{}

	assert.True(t, rated.Rated())
	assert.False(t, unrated.Rated())
}
