// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package recommend is the recommendation engine: the online ranking
// path that turns a user's watch history into an ordered list of
// unseen titles, and the offline segmentation job that fits the user
// clustering model.
//
// The online path is a two-state policy per request. A user with no
// recorded history is served the global popularity ranking (catalog
// rating descending). A user with history gets genre-affinity ranking:
// titles they rated 4 or higher vote for their genres, the top three
// genres define the candidate pool, and candidates are ordered by
// catalog rating. Both states are pure reads; identical inputs produce
// identical output.
//
// The offline path (RunSegmentation) builds user feature vectors,
// standardizes them, selects a segment count by silhouette score, and
// persists the fitted model through the ModelStore collaborator. The
// serving path does not consume segment assignments yet; Request
// carries an optional segment id so a scoring policy can be added
// without changing the call surface.
//
// The package depends on its collaborators only through the reader and
// store interfaces defined in types.go, so the database layer can
// implement them without a circular import.
package recommend
