// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/reelrank/internal/database"
	"github.com/tomtom215/reelrank/internal/models"
)

// RateRequest records one watch/rate action for the authenticated user.
// Rating is optional: a title can be watched without being rated.
type RateRequest struct {
	MovieID       int  `json:"movie_id" validate:"required,min=1"`
	Rating        *int `json:"rating" validate:"omitempty,min=1,max=5"`
	WatchDuration int  `json:"watch_duration" validate:"min=0"`
}

func (s *Server) handleRateMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req RateRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	historyID, err := s.db.AddWatchEvent(r.Context(), &models.WatchEvent{
		UserID:        userID,
		MovieID:       req.MovieID,
		Rating:        req.Rating,
		WatchDuration: req.WatchDuration,
	})
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "MOVIE_NOT_FOUND", "Movie does not exist", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record watch event", err)
		return
	}

	respondData(w, http.StatusCreated, map[string]interface{}{
		"history_id": historyID,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	history, err := s.db.UserHistory(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load watch history", err)
		return
	}
	if history == nil {
		history = []models.WatchEvent{}
	}

	respondData(w, http.StatusOK, history)
}
