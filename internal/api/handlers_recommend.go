// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/reelrank/internal/database"
	"github.com/tomtom215/reelrank/internal/recommend"
)

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	req := recommend.Request{
		UserID: userID,
		TopN:   getIntParam(r, "top_n", 0),
	}

	// Attach the user's offline segment when one exists. The engine
	// accepts it for forward compatibility; absence is normal for new
	// users and before the first segmentation run.
	if segmentID, err := s.db.UserSegment(r.Context(), userID); err == nil {
		req.SegmentID = &segmentID
	} else if !errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user segment", err)
		return
	}

	resp, err := s.engine.Recommend(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_FAILED", "Failed to compute recommendations", err)
		return
	}

	respondData(w, http.StatusOK, resp)
}
