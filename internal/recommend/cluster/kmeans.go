// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package cluster

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
)

var (
	errSeedCollapse = errors.New("fewer distinct vectors than requested clusters")
	errEmptyCluster = errors.New("clustering produced an empty cluster")
	errNotConverged = errors.New("assignments did not stabilize within the iteration cap")
)

// Model is a fitted k-means partition of one feature population.
// Labels is index-aligned with the input vectors: Labels[i] is the
// segment of vector i, in [0, K).
type Model struct {
	K          int         `json:"k"`
	Centroids  [][]float64 `json:"centroids"`
	Labels     []int       `json:"labels"`
	Inertia    float64     `json:"inertia"`
	Iterations int         `json:"iterations"`
}

// kMeans runs Lloyd's algorithm with k-means++ seeding. All randomness
// comes from rng, so a fixed source reproduces the fit exactly. It
// fails when the seeding cannot place k distinct centroids, when a
// cluster ends up empty, or when assignments are still moving at the
// iteration cap.
func kMeans(ctx context.Context, vectors [][]float64, k, maxIter int, rng *rand.Rand) (*Model, error) {
	n := len(vectors)
	if k < 1 || k > n {
		return nil, fmt.Errorf("k=%d out of range for %d vectors", k, n)
	}

	centroids, err := seedCentroids(vectors, k, rng)
	if err != nil {
		return nil, err
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	for iter := 1; iter <= maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		moved := assign(vectors, centroids, labels)
		if !moved {
			counts := countLabels(labels, k)
			for c, count := range counts {
				if count == 0 {
					return nil, fmt.Errorf("%w: cluster %d", errEmptyCluster, c)
				}
			}
			return &Model{
				K:          k,
				Centroids:  centroids,
				Labels:     labels,
				Inertia:    inertia(vectors, centroids, labels),
				Iterations: iter,
			}, nil
		}

		recompute(vectors, centroids, labels, k)
	}

	return nil, fmt.Errorf("%w (cap %d)", errNotConverged, maxIter)
}

// seedCentroids picks k initial centroids k-means++ style: the first
// uniformly at random, each subsequent one sampled proportionally to
// its squared distance from the nearest centroid chosen so far.
func seedCentroids(vectors [][]float64, k int, rng *rand.Rand) ([][]float64, error) {
	n := len(vectors)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, cloneVector(vectors[rng.Intn(n)]))

	weights := make([]float64, n)
	for len(centroids) < k {
		var total float64
		for i, v := range vectors {
			weights[i] = squaredDistance(v, nearestCentroid(v, centroids))
			total += weights[i]
		}
		if total == 0 {
			// Every remaining vector coincides with a chosen centroid.
			return nil, fmt.Errorf("%w: k=%d", errSeedCollapse, k)
		}

		target := rng.Float64() * total
		idx := n - 1
		var cum float64
		for i, w := range weights {
			cum += w
			if cum >= target {
				idx = i
				break
			}
		}
		centroids = append(centroids, cloneVector(vectors[idx]))
	}

	return centroids, nil
}

// assign moves each vector to its nearest centroid, ties broken by the
// lowest centroid index. Reports whether any label changed.
func assign(vectors [][]float64, centroids [][]float64, labels []int) bool {
	moved := false
	for i, v := range vectors {
		best := 0
		bestDist := squaredDistance(v, centroids[0])
		for c := 1; c < len(centroids); c++ {
			if d := squaredDistance(v, centroids[c]); d < bestDist {
				best, bestDist = c, d
			}
		}
		if labels[i] != best {
			labels[i] = best
			moved = true
		}
	}
	return moved
}

// recompute replaces each centroid with the mean of its members.
// Centroids with no members keep their previous position; a final
// assignment pass decides whether that leaves them permanently empty.
func recompute(vectors [][]float64, centroids [][]float64, labels []int, k int) {
	dim := len(centroids[0])
	sums := make([][]float64, k)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	counts := make([]int, k)

	for i, v := range vectors {
		c := labels[i]
		counts[c]++
		for j, x := range v {
			sums[c][j] += x
		}
	}

	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			continue
		}
		for j := range sums[c] {
			centroids[c][j] = sums[c][j] / float64(counts[c])
		}
	}
}

func nearestCentroid(v []float64, centroids [][]float64) []float64 {
	best := centroids[0]
	bestDist := squaredDistance(v, best)
	for _, c := range centroids[1:] {
		if d := squaredDistance(v, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func inertia(vectors [][]float64, centroids [][]float64, labels []int) float64 {
	var total float64
	for i, v := range vectors {
		total += squaredDistance(v, centroids[labels[i]])
	}
	return total
}

func countLabels(labels []int, k int) []int {
	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}
	return counts
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func cloneVector(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
