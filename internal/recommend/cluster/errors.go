// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package cluster

import "fmt"

// ClusteringError indicates the segmentation model could not be fitted:
// no candidate k produced a valid clustering, or a fit on a fixed k
// degenerated (empty clusters, k out of range for the population).
type ClusteringError struct {
	Reason string
	Err    error
}

func (e *ClusteringError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("clustering failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("clustering failed: %s", e.Reason)
}

func (e *ClusteringError) Unwrap() error {
	return e.Err
}
