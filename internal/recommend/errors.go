// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"errors"
	"fmt"
)

// ErrSegmentationInProgress is returned when a segmentation run is
// requested while another run holds the training lock.
var ErrSegmentationInProgress = errors.New("segmentation run already in progress")

// DataIntegrityError reports a reference that could not be resolved.
// During serving it is recovered locally (the event is skipped);
// during offline fitting a structural instance (ID zero, wrapping the
// underlying cause) is fatal to the run.
type DataIntegrityError struct {
	Entity string
	ID     int
	Err    error
}

func (e *DataIntegrityError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("unresolved %s id %d", e.Entity, e.ID)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("unresolved %s reference", e.Entity)
}

func (e *DataIntegrityError) Unwrap() error {
	return e.Err
}
