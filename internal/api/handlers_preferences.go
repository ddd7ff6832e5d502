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

// PreferencesRequest replaces the user's declared preferences.
type PreferencesRequest struct {
	FavoriteGenres      string `json:"favorite_genres" validate:"max=200"`
	PreferredActors     string `json:"preferred_actors" validate:"max=200"`
	WatchTimePreference string `json:"watch_time_preference" validate:"omitempty,oneof=morning afternoon evening night"`
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	prefs, err := s.db.GetPreferences(r.Context(), userID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "PREFERENCES_NOT_SET", "No preferences set for this user", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load preferences", err)
		return
	}

	respondData(w, http.StatusOK, prefs)
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req PreferencesRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	err := s.db.UpsertPreferences(r.Context(), &models.UserPreferences{
		UserID:              userID,
		FavoriteGenres:      req.FavoriteGenres,
		PreferredActors:     req.PreferredActors,
		WatchTimePreference: req.WatchTimePreference,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save preferences", err)
		return
	}

	prefs, err := s.db.GetPreferences(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reload preferences", err)
		return
	}
	respondData(w, http.StatusOK, prefs)
}
