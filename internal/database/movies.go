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

// MovieFilter narrows ListMovies. Zero value means no filtering.
type MovieFilter struct {
	// Genre matches titles whose genre set contains the tag.
	Genre string

	Limit  int
	Offset int
}

// AllMovies returns the full catalog ordered by movie id. This is the
// engine's CatalogReader.
func (db *DB) AllMovies(ctx context.Context) ([]models.Movie, error) {
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT movie_id, title, COALESCE(genre, ''), COALESCE(release_year, 0),
		       COALESCE(rating, 0), COALESCE(description, '')
		FROM movies ORDER BY movie_id`)
	observe("select", "movies", start, err)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	return scanMovies(rows)
}

// ListMovies returns a filtered page of the catalog, ordered by movie
// id for stable pagination.
func (db *DB) ListMovies(ctx context.Context, filter MovieFilter) ([]models.Movie, error) {
	start := time.Now()

	query := `
		SELECT movie_id, title, COALESCE(genre, ''), COALESCE(release_year, 0),
		       COALESCE(rating, 0), COALESCE(description, '')
		FROM movies`
	args := []any{}
	if filter.Genre != "" {
		// Genres are stored comma-joined; match the tag at any position.
		query += ` WHERE list_contains(string_split(COALESCE(genre, ''), ','), ?)`
		args = append(args, filter.Genre)
	}
	query += ` ORDER BY movie_id LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	observe("select", "movies", start, err)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	return scanMovies(rows)
}

// CountMovies returns the catalog size, honoring the genre filter.
func (db *DB) CountMovies(ctx context.Context, filter MovieFilter) (int, error) {
	start := time.Now()

	query := `SELECT count(*) FROM movies`
	args := []any{}
	if filter.Genre != "" {
		query += ` WHERE list_contains(string_split(COALESCE(genre, ''), ','), ?)`
		args = append(args, filter.Genre)
	}

	var count int
	err := db.conn.QueryRowContext(ctx, query, args...).Scan(&count)
	observe("select", "movies", start, err)
	if err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return count, nil
}

// GetMovie fetches one title, ErrNotFound if absent.
func (db *DB) GetMovie(ctx context.Context, movieID int) (*models.Movie, error) {
	start := time.Now()

	var m models.Movie
	err := db.conn.QueryRowContext(ctx, `
		SELECT movie_id, title, COALESCE(genre, ''), COALESCE(release_year, 0),
		       COALESCE(rating, 0), COALESCE(description, '')
		FROM movies WHERE movie_id = ?`,
		movieID,
	).Scan(&m.MovieID, &m.Title, &m.Genre, &m.ReleaseYear, &m.Rating, &m.Description)
	observe("select", "movies", start, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return &m, nil
}

// InsertMovie adds a catalog title and returns its assigned id.
func (db *DB) InsertMovie(ctx context.Context, m *models.Movie) (int, error) {
	start := time.Now()

	var id int
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO movies (title, genre, release_year, rating, description)
		VALUES (?, ?, ?, ?, ?)
		RETURNING movie_id`,
		m.Title, m.Genre, m.ReleaseYear, m.Rating, m.Description,
	).Scan(&id)
	observe("insert", "movies", start, err)

	if err != nil {
		return 0, fmt.Errorf("insert movie: %w", err)
	}
	return id, nil
}

func scanMovies(rows *sql.Rows) ([]models.Movie, error) {
	var movies []models.Movie
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.MovieID, &m.Title, &m.Genre, &m.ReleaseYear, &m.Rating, &m.Description); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}
