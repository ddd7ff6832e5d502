// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package cluster implements the user segmentation model: k-means
// partitioning over normalized feature vectors with silhouette-based
// selection of the segment count.
//
// # Algorithm
//
// Fitting uses Lloyd's algorithm with k-means++ seeding: initial
// centroids are spread out in feature space by sampling proportionally
// to squared distance from the nearest already-chosen centroid, which
// avoids the poor local optima of uniform random seeding. Iterations
// stop when assignments no longer change or the iteration cap is hit;
// the cap guarantees termination on pathological inputs.
//
// # Selecting k
//
// SelectK runs one trial per candidate k in [KMin, KMax] and scores each
// with the mean silhouette coefficient (range [-1, 1], higher is
// better, undefined for k < 2 or k >= n). Trials are independent and run
// concurrently; each derives its RNG from Seed+k so results are
// reproducible regardless of goroutine scheduling. The winner is the
// highest-scoring k, ties broken by the smallest k. If no candidate
// produces a valid clustering, SelectK fails with a *ClusteringError
// instead of guessing.
package cluster
