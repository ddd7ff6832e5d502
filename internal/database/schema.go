// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package database

import (
	"context"
	"fmt"
)

// schemaStatements creates the full schema. DuckDB has no
// AUTO_INCREMENT; surrogate keys come from sequences.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS seq_user_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_movie_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_history_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_preference_id START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_segment_model_id START 1`,

	`CREATE TABLE IF NOT EXISTS users (
		user_id       INTEGER PRIMARY KEY DEFAULT nextval('seq_user_id'),
		username      VARCHAR(50) NOT NULL UNIQUE,
		email         VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at    TIMESTAMP NOT NULL DEFAULT current_timestamp,
		is_active     BOOLEAN NOT NULL DEFAULT true
	)`,

	`CREATE TABLE IF NOT EXISTS movies (
		movie_id     INTEGER PRIMARY KEY DEFAULT nextval('seq_movie_id'),
		title        VARCHAR(100) NOT NULL,
		genre        VARCHAR(100),
		release_year INTEGER,
		rating       DOUBLE,
		description  VARCHAR(500),
		created_at   TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,

	`CREATE TABLE IF NOT EXISTS watch_history (
		history_id     INTEGER PRIMARY KEY DEFAULT nextval('seq_history_id'),
		user_id        INTEGER NOT NULL REFERENCES users(user_id),
		movie_id       INTEGER NOT NULL REFERENCES movies(movie_id),
		watch_date     TIMESTAMP NOT NULL DEFAULT current_timestamp,
		rating         INTEGER CHECK (rating IS NULL OR rating BETWEEN 1 AND 5),
		watch_duration INTEGER NOT NULL CHECK (watch_duration >= 0)
	)`,

	`CREATE TABLE IF NOT EXISTS user_preferences (
		preference_id         INTEGER PRIMARY KEY DEFAULT nextval('seq_preference_id'),
		user_id               INTEGER NOT NULL UNIQUE REFERENCES users(user_id),
		favorite_genres       VARCHAR(200),
		preferred_actors      VARCHAR(200),
		watch_time_preference VARCHAR(20)
	)`,

	// One row per offline run; the fitted artifact is a JSON blob so
	// float values round-trip exactly.
	`CREATE TABLE IF NOT EXISTS segment_models (
		model_id   INTEGER PRIMARY KEY DEFAULT nextval('seq_segment_model_id'),
		fitted_at  TIMESTAMP NOT NULL,
		k          INTEGER NOT NULL,
		silhouette DOUBLE NOT NULL,
		users      INTEGER NOT NULL,
		artifact   VARCHAR NOT NULL
	)`,

	// Assignments of the most recent run only, overwritten wholesale.
	`CREATE TABLE IF NOT EXISTS segment_assignments (
		user_id    INTEGER PRIMARY KEY,
		segment_id INTEGER NOT NULL,
		model_id   INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_watch_history_user ON watch_history(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_watch_history_movie ON watch_history(movie_id)`,
	`CREATE INDEX IF NOT EXISTS idx_movies_genre ON movies(genre)`,
}

func (db *DB) createSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
