// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/models"
	"github.com/tomtom215/reelrank/internal/recommend/features"
	"github.com/tomtom215/reelrank/internal/recommend/storage"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "512MB",
		Threads:   2,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestCreateAndGetUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := db.CreateUser(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)
	assert.NotZero(t, created.UserID)
	assert.True(t, created.IsActive)

	byName, err := db.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, byName.UserID)

	byID, err := db.GetUserByID(ctx, created.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = db.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUserDuplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.CreateUser(ctx, "bob", "bob@example.com", "hash")
	require.NoError(t, err)

	_, err = db.CreateUser(ctx, "bob", "other@example.com", "hash")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestAllUserIDsOrdered(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"u1", "u2", "u3"} {
		_, err := db.CreateUser(ctx, name, name+"@example.com", "hash")
		require.NoError(t, err)
	}

	ids, err := db.AllUserIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.IsIncreasing(t, ids)
}

func TestMoviesListFilterAndCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seed := []models.Movie{
		{Title: "One", Genre: "Drama", ReleaseYear: 2001, Rating: 7.1},
		{Title: "Two", Genre: "Drama,Thriller", ReleaseYear: 2002, Rating: 8.2},
		{Title: "Three", Genre: "Comedy", ReleaseYear: 2003, Rating: 6.3},
	}
	for i := range seed {
		_, err := db.InsertMovie(ctx, &seed[i])
		require.NoError(t, err)
	}

	all, err := db.AllMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Multi-genre titles match on any tag.
	dramas, err := db.ListMovies(ctx, MovieFilter{Genre: "Drama", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, dramas, 2)

	thrillers, err := db.ListMovies(ctx, MovieFilter{Genre: "Thriller", Limit: 10})
	require.NoError(t, err)
	require.Len(t, thrillers, 1)
	assert.Equal(t, "Two", thrillers[0].Title)

	count, err := db.CountMovies(ctx, MovieFilter{Genre: "Drama"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	page, err := db.ListMovies(ctx, MovieFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Three", page[0].Title)
}

func TestWatchHistoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user, err := db.CreateUser(ctx, "carol", "carol@example.com", "hash")
	require.NoError(t, err)
	movieID, err := db.InsertMovie(ctx, &models.Movie{Title: "M", Genre: "Drama", Rating: 7})
	require.NoError(t, err)

	rating := 5
	_, err = db.AddWatchEvent(ctx, &models.WatchEvent{
		UserID: user.UserID, MovieID: movieID, Rating: &rating, WatchDuration: 120,
	})
	require.NoError(t, err)

	// Unrated events keep a NULL rating.
	_, err = db.AddWatchEvent(ctx, &models.WatchEvent{
		UserID: user.UserID, MovieID: movieID, WatchDuration: 45,
	})
	require.NoError(t, err)

	history, err := db.UserHistory(ctx, user.UserID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.NotNil(t, history[0].Rating)
	assert.Equal(t, 5, *history[0].Rating)
	assert.Nil(t, history[1].Rating)

	all, err := db.AllHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAddWatchEventUnknownMovie(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user, err := db.CreateUser(ctx, "dave", "dave@example.com", "hash")
	require.NoError(t, err)

	_, err = db.AddWatchEvent(ctx, &models.WatchEvent{
		UserID: user.UserID, MovieID: 9999, WatchDuration: 60,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPreferencesUpsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user, err := db.CreateUser(ctx, "erin", "erin@example.com", "hash")
	require.NoError(t, err)

	_, err = db.GetPreferences(ctx, user.UserID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.UpsertPreferences(ctx, &models.UserPreferences{
		UserID: user.UserID, FavoriteGenres: "Drama,Comedy", WatchTimePreference: "evening",
	}))
	require.NoError(t, db.UpsertPreferences(ctx, &models.UserPreferences{
		UserID: user.UserID, FavoriteGenres: "Horror", WatchTimePreference: "night",
	}))

	prefs, err := db.GetPreferences(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Horror", prefs.FavoriteGenres)
	assert.Equal(t, "night", prefs.WatchTimePreference)
}

func TestSegmentationPersistence(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	model := &storage.SegmentModel{
		FittedAt:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Seed:        42,
		K:           2,
		Silhouette:  0.73,
		Users:       3,
		UserColumns: features.UserFeatureColumns,
		UserParams:  features.Params{Mean: []float64{1, 2, 3, 4}, StdDev: []float64{1, 1, 1, 1}},
		Centroids:   [][]float64{{0.5, -0.5, 0, 0}, {-0.5, 0.5, 0, 0}},
		TitleParams: features.Params{Mean: []float64{2000, 7}, StdDev: []float64{10, 1.5}},
		Vocabulary:  features.Vocabulary{"Drama", "unknown"},
	}
	assignments := []storage.Assignment{
		{UserID: 1, SegmentID: 0},
		{UserID: 2, SegmentID: 1},
		{UserID: 3, SegmentID: 0},
	}

	_, err := db.LatestSegmentation(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.SaveSegmentation(ctx, model, assignments))

	loaded, err := db.LatestSegmentation(ctx)
	require.NoError(t, err)
	assert.Equal(t, model, loaded)

	segment, err := db.UserSegment(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, segment)

	_, err = db.UserSegment(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	// A second run replaces assignments wholesale.
	model2 := *model
	model2.K = 3
	require.NoError(t, db.SaveSegmentation(ctx, &model2, []storage.Assignment{{UserID: 1, SegmentID: 2}}))

	latest, err := db.LatestSegmentation(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, latest.K)

	_, err = db.UserSegment(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeedMockDataIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SeedMockData(ctx, 42))

	users, err := db.AllUserIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 50)

	movies, err := db.AllMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 100)

	history, err := db.AllHistory(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(history), 50*5)
	assert.LessOrEqual(t, len(history), 50*10)

	// Second call is a no-op.
	require.NoError(t, db.SeedMockData(ctx, 42))
	again, err := db.AllUserIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 50)
}
