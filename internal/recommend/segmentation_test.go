// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/models"
	"github.com/tomtom215/reelrank/internal/recommend/features"
	"github.com/tomtom215/reelrank/internal/recommend/storage"
)

// mockSegmentationData implements all four SegmentationJob collaborators.
type mockSegmentationData struct {
	userIDs []int
	movies  []models.Movie
	events  []models.WatchEvent

	mu          sync.Mutex
	saved       *storage.SegmentModel
	assignments []storage.Assignment
	saveErr     error

	// userGate, when set, blocks AllUserIDs until closed.
	userGate chan struct{}
}

func (m *mockSegmentationData) AllUserIDs(ctx context.Context) ([]int, error) {
	if m.userGate != nil {
		<-m.userGate
	}
	return m.userIDs, nil
}

func (m *mockSegmentationData) AllMovies(ctx context.Context) ([]models.Movie, error) {
	return m.movies, nil
}

func (m *mockSegmentationData) UserHistory(ctx context.Context, userID int) ([]models.WatchEvent, error) {
	var out []models.WatchEvent
	for _, e := range m.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockSegmentationData) AllHistory(ctx context.Context) ([]models.WatchEvent, error) {
	return m.events, nil
}

func (m *mockSegmentationData) SaveSegmentation(ctx context.Context, model *storage.SegmentModel, assignments []storage.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = model
	m.assignments = assignments
	return nil
}

// threeBehaviorGroups builds 12 users in three sharply distinct
// behavior profiles: binge watchers who rate high, one-off viewers who
// rate low, and a moderate middle group.
func threeBehaviorGroups() *mockSegmentationData {
	data := &mockSegmentationData{
		movies: []models.Movie{
			{MovieID: 1, Genre: "Drama", ReleaseYear: 2001, Rating: 7.0},
			{MovieID: 2, Genre: "Comedy", ReleaseYear: 2005, Rating: 6.5},
			{MovieID: 3, Genre: "Action,Thriller", ReleaseYear: 2010, Rating: 8.0},
		},
	}

	addEvents := func(userID, count, rating, duration int) {
		for i := 0; i < count; i++ {
			r := rating
			data.events = append(data.events, models.WatchEvent{
				UserID: userID, MovieID: 1 + i%3, Rating: &r, WatchDuration: duration,
			})
		}
	}

	for u := 1; u <= 4; u++ {
		data.userIDs = append(data.userIDs, u)
		addEvents(u, 10, 5, 150)
	}
	for u := 5; u <= 8; u++ {
		data.userIDs = append(data.userIDs, u)
		addEvents(u, 1, 1, 30)
	}
	for u := 9; u <= 12; u++ {
		data.userIDs = append(data.userIDs, u)
		addEvents(u, 5, 3, 60)
	}
	return data
}

func newTestJob(t *testing.T, data *mockSegmentationData) *SegmentationJob {
	t.Helper()
	job, err := NewSegmentationJob(data, data, data, data, 2, 10, 300, 42, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSegmentationJob: %v", err)
	}
	return job
}

func TestSegmentationRunFitsBehaviorGroups(t *testing.T) {
	data := threeBehaviorGroups()
	job := newTestJob(t, data)

	result, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.K != 3 {
		t.Errorf("k = %d, want 3", result.K)
	}
	if result.Users != 12 {
		t.Errorf("users = %d, want 12", result.Users)
	}
	if result.Silhouette <= 0.9 {
		t.Errorf("silhouette = %f, want near 1 for identical in-group vectors", result.Silhouette)
	}

	if data.saved == nil {
		t.Fatal("model was not persisted")
	}
	if data.saved.K != 3 || len(data.saved.Centroids) != 3 {
		t.Errorf("persisted k = %d with %d centroids, want 3", data.saved.K, len(data.saved.Centroids))
	}
	if len(data.assignments) != 12 {
		t.Fatalf("assignments = %d, want 12", len(data.assignments))
	}
	if want := (features.Vocabulary{"Action", "Comedy", "Drama", "Thriller"}); !reflect.DeepEqual(data.saved.Vocabulary, want) {
		t.Errorf("vocabulary = %v, want %v", data.saved.Vocabulary, want)
	}

	// Users in the same behavior group land in the same segment, and
	// the three groups land in three distinct segments.
	segmentOf := make(map[int]int, 12)
	for _, a := range data.assignments {
		segmentOf[a.UserID] = a.SegmentID
	}
	groups := [][]int{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}}
	distinct := make(map[int]struct{})
	for _, group := range groups {
		for _, u := range group[1:] {
			if segmentOf[u] != segmentOf[group[0]] {
				t.Errorf("user %d in segment %d, group leader in %d", u, segmentOf[u], segmentOf[group[0]])
			}
		}
		distinct[segmentOf[group[0]]] = struct{}{}
	}
	if len(distinct) != 3 {
		t.Errorf("groups share segments: %v", distinct)
	}
}

func TestSegmentationRunDeterministic(t *testing.T) {
	first := threeBehaviorGroups()
	if _, err := newTestJob(t, first).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i := 0; i < 3; i++ {
		again := threeBehaviorGroups()
		if _, err := newTestJob(t, again).Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if first.saved.K != again.saved.K {
			t.Fatalf("k differs across runs: %d vs %d", first.saved.K, again.saved.K)
		}
		for u := range first.assignments {
			if first.assignments[u] != again.assignments[u] {
				t.Fatalf("assignment %d differs across runs", u)
			}
		}
	}
}

func TestSegmentationRunEmptyCatalog(t *testing.T) {
	data := threeBehaviorGroups()
	data.movies = nil
	job := newTestJob(t, data)

	_, err := job.Run(context.Background())

	var intErr *DataIntegrityError
	if !errors.As(err, &intErr) {
		t.Fatalf("err = %v, want *DataIntegrityError", err)
	}
	if !errors.Is(err, features.ErrEmptyCatalog) {
		t.Errorf("err = %v, want wrapped ErrEmptyCatalog", err)
	}
}

func TestSegmentationRunNoUsers(t *testing.T) {
	data := threeBehaviorGroups()
	data.userIDs = nil
	job := newTestJob(t, data)

	_, err := job.Run(context.Background())
	if !errors.Is(err, features.ErrNoVectors) {
		t.Errorf("err = %v, want wrapped ErrNoVectors", err)
	}
}

func TestSegmentationRunRejectsConcurrentRun(t *testing.T) {
	data := threeBehaviorGroups()
	data.userGate = make(chan struct{})
	job := newTestJob(t, data)

	done := make(chan error, 1)
	go func() {
		_, err := job.Run(context.Background())
		done <- err
	}()

	// Wait for the first run to take the lock.
	deadline := time.After(5 * time.Second)
	for !job.Status().Running {
		select {
		case <-deadline:
			t.Fatal("first run never started")
		case <-time.After(time.Millisecond):
		}
	}

	if _, err := job.Run(context.Background()); !errors.Is(err, ErrSegmentationInProgress) {
		t.Errorf("err = %v, want ErrSegmentationInProgress", err)
	}

	close(data.userGate)
	if err := <-done; err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	status := job.Status()
	if status.Running {
		t.Error("job still reported running after completion")
	}
	if status.LastResult == nil || status.LastResult.K != 3 {
		t.Errorf("status last result = %+v, want k=3", status.LastResult)
	}
}
