// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/reelrank/internal/models"
)

// AddWatchEvent records one watch/rate action. Events are immutable:
// there is no update or delete path.
func (db *DB) AddWatchEvent(ctx context.Context, event *models.WatchEvent) (int, error) {
	if _, err := db.GetMovie(ctx, event.MovieID); err != nil {
		return 0, fmt.Errorf("verify movie %d: %w", event.MovieID, err)
	}

	start := time.Now()
	watchDate := event.WatchDate
	if watchDate.IsZero() {
		watchDate = time.Now().UTC()
	}

	var id int
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO watch_history (user_id, movie_id, watch_date, rating, watch_duration)
		VALUES (?, ?, ?, ?, ?)
		RETURNING history_id`,
		event.UserID, event.MovieID, watchDate, event.Rating, event.WatchDuration,
	).Scan(&id)
	observe("insert", "watch_history", start, err)

	if err != nil {
		return 0, fmt.Errorf("add watch event: %w", err)
	}
	return id, nil
}

// UserHistory returns all watch events for one user, oldest first.
// This is the engine's per-user HistoryReader.
func (db *DB) UserHistory(ctx context.Context, userID int) ([]models.WatchEvent, error) {
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT history_id, user_id, movie_id, rating, watch_duration, watch_date
		FROM watch_history WHERE user_id = ?
		ORDER BY history_id`,
		userID)
	observe("select", "watch_history", start, err)
	if err != nil {
		return nil, fmt.Errorf("list history for user %d: %w", userID, err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	return scanEvents(rows)
}

// AllHistory returns every watch event, for offline fitting.
func (db *DB) AllHistory(ctx context.Context) ([]models.WatchEvent, error) {
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT history_id, user_id, movie_id, rating, watch_duration, watch_date
		FROM watch_history ORDER BY history_id`)
	observe("select", "watch_history", start, err)
	if err != nil {
		return nil, fmt.Errorf("list full history: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]models.WatchEvent, error) {
	var events []models.WatchEvent
	for rows.Next() {
		var e models.WatchEvent
		var rating sql.NullInt64
		if err := rows.Scan(&e.HistoryID, &e.UserID, &e.MovieID, &rating, &e.WatchDuration, &e.WatchDate); err != nil {
			return nil, fmt.Errorf("scan watch event: %w", err)
		}
		if rating.Valid {
			r := int(rating.Int64)
			e.Rating = &r
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watch events: %w", err)
	}
	return events, nil
}
