// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/models"
)

// Demo data shape: 50 users, 100 titles, 5-10 watch events per user
// over distinct titles, ratings 1-5, durations 30-180 minutes.
const (
	seedUsers          = 50
	seedMovies         = 100
	seedMinWatches     = 5
	seedMaxWatches     = 10
	seedMinDuration    = 30
	seedMaxDuration    = 180
	seedFavoriteGenres = 3
)

var seedGenres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime", "Documentary",
	"Drama", "Family", "Fantasy", "Horror", "Musical", "Mystery",
	"Romance", "Science Fiction", "Thriller", "War", "Western",
}

var seedTitles = []string{
	"Interstellar", "Inception", "The Dark Knight", "The Prestige", "Fight Club",
	"Shutter Island", "The Green Mile", "The Shawshank Redemption", "Forrest Gump", "The Pianist",
	"Gladiator", "Titanic", "The Matrix", "The Lord of the Rings", "Harry Potter",
	"Star Wars", "The Terminator", "Jurassic Park", "Jaws", "E.T.",
}

var seedWatchTimes = []string{"morning", "afternoon", "evening", "night"}

// SeedMockData populates an empty database with a reproducible
// synthetic dataset for demos and local development. It is a no-op
// when users already exist.
func (db *DB) SeedMockData(ctx context.Context, seed int64) error {
	var existing int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&existing); err != nil {
		return fmt.Errorf("check existing users: %w", err)
	}
	if existing > 0 {
		logging.Debug().Int("users", existing).Msg("Database already populated, skipping seed")
		return nil
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // demo data, not cryptography
	start := time.Now()

	userIDs, err := db.seedUserRows(ctx, rng)
	if err != nil {
		return err
	}
	movieIDs, err := db.seedMovieRows(ctx, rng)
	if err != nil {
		return err
	}
	events, err := db.seedHistoryRows(ctx, rng, userIDs, movieIDs)
	if err != nil {
		return err
	}
	if err := db.seedPreferenceRows(ctx, rng, userIDs); err != nil {
		return err
	}

	logging.Info().
		Int("users", len(userIDs)).
		Int("movies", len(movieIDs)).
		Int("watch_events", events).
		Dur("duration", time.Since(start)).
		Msg("Seeded mock data")

	return nil
}

func (db *DB) seedUserRows(ctx context.Context, rng *rand.Rand) ([]int, error) {
	ids := make([]int, 0, seedUsers)
	for i := 1; i <= seedUsers; i++ {
		username := fmt.Sprintf("viewer%03d", i)
		email := fmt.Sprintf("%s@example.com", username)
		// Demo accounts are not meant to be logged into; a random
		// token in the hash column keeps them unguessable.
		placeholder := fmt.Sprintf("seeded-%016x", rng.Uint64())
		user, err := db.CreateUser(ctx, username, email, placeholder)
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", username, err)
		}
		ids = append(ids, user.UserID)
	}
	return ids, nil
}

func (db *DB) seedMovieRows(ctx context.Context, rng *rand.Rand) ([]int, error) {
	ids := make([]int, 0, seedMovies)
	for i := 0; i < seedMovies; i++ {
		m := &models.Movie{
			Title:       fmt.Sprintf("%s %d", seedTitles[rng.Intn(len(seedTitles))], 1+rng.Intn(10)),
			Genre:       seedGenres[rng.Intn(len(seedGenres))],
			ReleaseYear: 1980 + rng.Intn(44),
			Rating:      float64(10+rng.Intn(91)) / 10.0, // 1.0-10.0, one decimal
			Description: fmt.Sprintf("Synthetic catalog title #%d for demos.", i+1),
		}
		id, err := db.InsertMovie(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("seed movie %d: %w", i+1, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (db *DB) seedHistoryRows(ctx context.Context, rng *rand.Rand, userIDs, movieIDs []int) (int, error) {
	total := 0
	for _, userID := range userIDs {
		watches := seedMinWatches + rng.Intn(seedMaxWatches-seedMinWatches+1)
		for _, idx := range rng.Perm(len(movieIDs))[:watches] {
			rating := 1 + rng.Intn(5)
			event := &models.WatchEvent{
				UserID:        userID,
				MovieID:       movieIDs[idx],
				Rating:        &rating,
				WatchDuration: seedMinDuration + rng.Intn(seedMaxDuration-seedMinDuration+1),
				WatchDate:     time.Now().UTC().Add(-time.Duration(rng.Intn(365*24)) * time.Hour),
			}
			if _, err := db.AddWatchEvent(ctx, event); err != nil {
				return 0, fmt.Errorf("seed history for user %d: %w", userID, err)
			}
			total++
		}
	}
	return total, nil
}

func (db *DB) seedPreferenceRows(ctx context.Context, rng *rand.Rand, userIDs []int) error {
	for _, userID := range userIDs {
		perm := rng.Perm(len(seedGenres))[:seedFavoriteGenres]
		genres := ""
		for i, idx := range perm {
			if i > 0 {
				genres += ","
			}
			genres += seedGenres[idx]
		}
		p := &models.UserPreferences{
			UserID:              userID,
			FavoriteGenres:      genres,
			WatchTimePreference: seedWatchTimes[rng.Intn(len(seedWatchTimes))],
		}
		if err := db.UpsertPreferences(ctx, p); err != nil {
			return fmt.Errorf("seed preferences for user %d: %w", userID, err)
		}
	}
	return nil
}
