// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelrank/internal/database"
	"github.com/tomtom215/reelrank/internal/models"
)

// MovieListResponse is a page of the catalog.
type MovieListResponse struct {
	Movies   []models.Movie `json:"movies"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	page := getIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := getIntParam(r, "page_size", s.cfg.API.DefaultPageSize)
	if pageSize < 1 {
		pageSize = s.cfg.API.DefaultPageSize
	}
	if pageSize > s.cfg.API.MaxPageSize {
		pageSize = s.cfg.API.MaxPageSize
	}

	filter := database.MovieFilter{
		Genre:  r.URL.Query().Get("genre"),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	movies, err := s.db.ListMovies(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list movies", err)
		return
	}
	total, err := s.db.CountMovies(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to count movies", err)
		return
	}
	if movies == nil {
		movies = []models.Movie{}
	}

	respondData(w, http.StatusOK, MovieListResponse{
		Movies:   movies,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieID"))
	if err != nil || movieID < 1 {
		respondError(w, http.StatusBadRequest, "INVALID_MOVIE_ID", "Movie id must be a positive integer", nil)
		return
	}

	movie, err := s.db.GetMovie(r.Context(), movieID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "MOVIE_NOT_FOUND", "Movie does not exist", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load movie", err)
		return
	}

	respondData(w, http.StatusOK, movie)
}
