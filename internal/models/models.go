// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package models defines the shared domain entities for Reelrank.
package models

import (
	"strings"
	"time"
)

// User is a registered account on the platform.
type User struct {
	UserID       int       `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`
}

// Movie is a catalog title. Genre is stored comma-joined; use Genres()
// for the set view.
type Movie struct {
	MovieID     int     `json:"movie_id"`
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	ReleaseYear int     `json:"release_year"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
}

// UnknownGenre is the sentinel category for titles without genre tags.
// Keeping a sentinel (rather than dropping the title) preserves feature
// vector width across the whole catalog.
const UnknownGenre = "unknown"

// Genres returns the movie's genre tags as a slice, splitting the
// comma-joined storage form. A missing genre yields [UnknownGenre].
func (m *Movie) Genres() []string {
	if strings.TrimSpace(m.Genre) == "" {
		return []string{UnknownGenre}
	}

	parts := strings.Split(m.Genre, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	if len(genres) == 0 {
		return []string{UnknownGenre}
	}
	return genres
}

// WatchEvent records one watch/rate action. Immutable once recorded.
type WatchEvent struct {
	HistoryID int `json:"history_id"`
	UserID    int `json:"user_id"`
	MovieID   int `json:"movie_id"`

	// Rating is the user's 1-5 rating, or nil when the title was
	// watched but not rated.
	Rating *int `json:"rating"`

	// WatchDuration is the watched time in minutes.
	WatchDuration int `json:"watch_duration"`

	WatchDate time.Time `json:"watch_date"`
}

// Rated reports whether the event carries a rating.
func (e *WatchEvent) Rated() bool {
	return e.Rating != nil
}

// UserPreferences holds explicit user-declared preferences.
type UserPreferences struct {
	PreferenceID        int    `json:"preference_id"`
	UserID              int    `json:"user_id"`
	FavoriteGenres      string `json:"favorite_genres"`
	PreferredActors     string `json:"preferred_actors"`
	WatchTimePreference string `json:"watch_time_preference"`
}
