// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"net/http"
)

func (s *Server) handleHealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (s *Server) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "Database is not reachable", err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"status": "ready"})
}
