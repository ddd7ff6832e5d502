// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelrank/internal/database"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// SegmentationStatusResponse combines the live job state with the
// most recently persisted model, if any.
type SegmentationStatusResponse struct {
	recommend.SegmentationStatus
	Model *SegmentModelSummary `json:"model,omitempty"`
}

// SegmentModelSummary is the persisted model without its bulky params.
type SegmentModelSummary struct {
	FittedAt   time.Time `json:"fitted_at"`
	K          int       `json:"k"`
	Silhouette float64   `json:"silhouette"`
	Users      int       `json:"users"`
	Genres     int       `json:"genres"`
}

func (s *Server) handleSegmentationStatus(w http.ResponseWriter, r *http.Request) {
	resp := SegmentationStatusResponse{SegmentationStatus: s.job.Status()}

	model, err := s.db.LatestSegmentation(r.Context())
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load segmentation model", err)
		return
	}
	if model != nil {
		resp.Model = &SegmentModelSummary{
			FittedAt:   model.FittedAt,
			K:          model.K,
			Silhouette: model.Silhouette,
			Users:      model.Users,
			Genres:     len(model.Vocabulary),
		}
	}

	respondData(w, http.StatusOK, resp)
}

// handleSegmentationRun starts an offline run in the background and
// returns immediately; progress is visible via the status endpoint.
func (s *Server) handleSegmentationRun(w http.ResponseWriter, r *http.Request) {
	if s.job.Status().Running {
		respondError(w, http.StatusConflict, "SEGMENTATION_RUNNING", "A segmentation run is already in progress", nil)
		return
	}

	go func() {
		// Detached from the request: the run outlives the HTTP call.
		if _, err := s.job.Run(context.Background()); err != nil && !errors.Is(err, recommend.ErrSegmentationInProgress) {
			logging.Error().Err(err).Msg("Background segmentation run failed")
		}
	}()

	respondData(w, http.StatusAccepted, map[string]string{"status": "started"})
}
