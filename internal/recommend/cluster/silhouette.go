// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package cluster

import "math"

// silhouetteScore computes the mean silhouette coefficient of a
// labelled population, in [-1, 1]. The second return reports whether
// the score is defined at all: it is not for k < 2, k >= n, or a
// labelling with empty clusters.
func silhouetteScore(vectors [][]float64, labels []int, k int) (float64, bool) {
	n := len(vectors)
	if k < 2 || k >= n {
		return 0, false
	}
	counts := countLabels(labels, k)
	for _, c := range counts {
		if c == 0 {
			return 0, false
		}
	}

	// Distance sums from vector i to the members of each cluster,
	// excluding i itself.
	var total float64
	sums := make([]float64, k)
	for i, v := range vectors {
		for c := range sums {
			sums[c] = 0
		}
		for j, w := range vectors {
			if j == i {
				continue
			}
			sums[labels[j]] += math.Sqrt(squaredDistance(v, w))
		}

		own := labels[i]
		if counts[own] == 1 {
			// Singleton clusters contribute a neutral coefficient.
			continue
		}

		a := sums[own] / float64(counts[own]-1)
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own {
				continue
			}
			if mean := sums[c] / float64(counts[c]); mean < b {
				b = mean
			}
		}

		if denom := math.Max(a, b); denom > 0 {
			total += (b - a) / denom
		}
	}

	return total / float64(n), true
}
