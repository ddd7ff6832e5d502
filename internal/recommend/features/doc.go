// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package features converts raw watch events and catalog metadata into
// fixed-width numeric feature vectors, and provides the column-wise
// standardization applied before clustering.
//
// # Feature construction
//
// User vectors aggregate that user's watch events: mean rating (unrated
// events ignored), event count, mean duration, total duration. A user
// with no events yields the zero vector; callers treat that as the
// cold-start case, not a degenerate input.
//
// Title vectors are [release_year, catalog_rating] followed by one
// indicator column per genre in the vocabulary. The vocabulary is
// derived from the catalog at build time and must be persisted with the
// vectors: it is not stable across catalog changes.
//
// # Determinism
//
// Both builders are pure functions of their inputs. Vocabulary columns
// are sorted lexicographically and aggregates are accumulated in input
// slice order, so identical inputs yield bit-identical vectors
// regardless of map iteration order anywhere upstream.
package features
