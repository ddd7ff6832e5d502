// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/reelrank/internal/models"
)

// GetPreferences fetches a user's declared preferences, ErrNotFound if
// they never set any.
func (db *DB) GetPreferences(ctx context.Context, userID int) (*models.UserPreferences, error) {
	start := time.Now()

	var p models.UserPreferences
	err := db.conn.QueryRowContext(ctx, `
		SELECT preference_id, user_id, COALESCE(favorite_genres, ''),
		       COALESCE(preferred_actors, ''), COALESCE(watch_time_preference, '')
		FROM user_preferences WHERE user_id = ?`,
		userID,
	).Scan(&p.PreferenceID, &p.UserID, &p.FavoriteGenres, &p.PreferredActors, &p.WatchTimePreference)
	observe("select", "user_preferences", start, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &p, nil
}

// UpsertPreferences replaces a user's declared preferences.
func (db *DB) UpsertPreferences(ctx context.Context, p *models.UserPreferences) error {
	start := time.Now()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, favorite_genres, preferred_actors, watch_time_preference)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			favorite_genres = excluded.favorite_genres,
			preferred_actors = excluded.preferred_actors,
			watch_time_preference = excluded.watch_time_preference`,
		p.UserID, p.FavoriteGenres, p.PreferredActors, p.WatchTimePreference)
	observe("upsert", "user_preferences", start, err)

	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}
