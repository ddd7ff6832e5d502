// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package features

import (
	"errors"
	"sort"

	"github.com/tomtom215/reelrank/internal/models"
)

// ErrEmptyCatalog indicates title features were requested for an empty
// catalog. This is structural: there is nothing to build a vocabulary from.
var ErrEmptyCatalog = errors.New("cannot build title features from an empty catalog")

// UserVector is the fixed-width aggregate of one user's watch history.
type UserVector struct {
	UserID        int     `json:"user_id"`
	AvgRating     float64 `json:"avg_rating"`
	WatchCount    float64 `json:"watch_count"`
	AvgDuration   float64 `json:"avg_duration"`
	TotalDuration float64 `json:"total_duration"`
}

// Values returns the vector in canonical column order:
// [avg_rating, watch_count, avg_duration, total_duration].
func (v UserVector) Values() []float64 {
	return []float64{v.AvgRating, v.WatchCount, v.AvgDuration, v.TotalDuration}
}

// UserFeatureColumns names the user vector columns in canonical order.
var UserFeatureColumns = []string{"avg_rating", "watch_count", "avg_duration", "total_duration"}

// TitleVector is the fixed-width representation of one catalog title:
// [release_year, catalog_rating, genre indicators...].
type TitleVector struct {
	MovieID int       `json:"movie_id"`
	Values  []float64 `json:"values"`
}

// Vocabulary is the ordered set of distinct genre tags observed in the
// catalog at build time. Indicator column i of a TitleVector corresponds
// to Vocabulary[i]. Persist it alongside the vectors; re-deriving it
// from a changed catalog yields incomparable vectors.
type Vocabulary []string

// Index returns the indicator column for a genre, or -1 if absent.
func (v Vocabulary) Index(genre string) int {
	for i, g := range v {
		if g == genre {
			return i
		}
	}
	return -1
}

// BuildUserFeatures aggregates watch events into one UserVector per user
// in userIDs. Users without events yield the zero vector (cold start).
// Events for users outside userIDs are ignored.
func BuildUserFeatures(userIDs []int, events []models.WatchEvent) map[int]UserVector {
	type acc struct {
		ratingSum   float64
		ratingCount int
		durationSum float64
		eventCount  int
	}

	accs := make(map[int]*acc, len(userIDs))
	for _, id := range userIDs {
		accs[id] = &acc{}
	}

	for i := range events {
		e := &events[i]
		a, ok := accs[e.UserID]
		if !ok {
			continue
		}
		a.eventCount++
		a.durationSum += float64(e.WatchDuration)
		if e.Rated() {
			a.ratingSum += float64(*e.Rating)
			a.ratingCount++
		}
	}

	vectors := make(map[int]UserVector, len(userIDs))
	for _, id := range userIDs {
		a := accs[id]
		v := UserVector{UserID: id}
		if a.eventCount > 0 {
			v.WatchCount = float64(a.eventCount)
			v.AvgDuration = a.durationSum / float64(a.eventCount)
			v.TotalDuration = a.durationSum
		}
		if a.ratingCount > 0 {
			v.AvgRating = a.ratingSum / float64(a.ratingCount)
		}
		vectors[id] = v
	}

	return vectors
}

// BuildTitleFeatures builds one TitleVector per catalog title plus the
// genre vocabulary the indicator columns are defined over. Titles with
// no genre tags fall into the "unknown" sentinel category so the vector
// width is uniform across the catalog.
func BuildTitleFeatures(movies []models.Movie) (map[int]TitleVector, Vocabulary, error) {
	if len(movies) == 0 {
		return nil, nil, ErrEmptyCatalog
	}

	vocab := buildVocabulary(movies)

	vectors := make(map[int]TitleVector, len(movies))
	for i := range movies {
		m := &movies[i]
		values := make([]float64, 2+len(vocab))
		values[0] = float64(m.ReleaseYear)
		values[1] = m.Rating
		for _, g := range m.Genres() {
			if idx := vocab.Index(g); idx >= 0 {
				values[2+idx] = 1
			}
		}
		vectors[m.MovieID] = TitleVector{MovieID: m.MovieID, Values: values}
	}

	return vectors, vocab, nil
}

// buildVocabulary collects the distinct genre tags across the catalog,
// sorted for a stable column order.
func buildVocabulary(movies []models.Movie) Vocabulary {
	seen := make(map[string]struct{})
	for i := range movies {
		for _, g := range movies[i].Genres() {
			seen[g] = struct{}{}
		}
	}

	vocab := make(Vocabulary, 0, len(seen))
	for g := range seen {
		vocab = append(vocab, g)
	}
	sort.Strings(vocab)
	return vocab
}
