// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/reelrank/internal/auth"
	"github.com/tomtom215/reelrank/internal/database"
	"github.com/tomtom215/reelrank/internal/logging"
)

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued session token.
type TokenResponse struct {
	Token    string `json:"token"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process registration", err)
		return
	}

	user, err := s.db.CreateUser(r.Context(), req.Username, req.Email, hash)
	if errors.Is(err, database.ErrDuplicate) {
		respondError(w, http.StatusConflict, "DUPLICATE_USER", "Username or email already registered", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user", err)
		return
	}

	token, err := s.jwt.GenerateToken(user.UserID, user.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token", err)
		return
	}

	logging.Info().Str("username", sanitizeLogValue(user.Username)).Msg("User registered")
	respondData(w, http.StatusCreated, TokenResponse{
		Token:    token,
		UserID:   user.UserID,
		Username: user.Username,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	user, err := s.db.GetUserByUsername(r.Context(), req.Username)
	if errors.Is(err, database.ErrNotFound) || (err == nil && !auth.VerifyPassword(user.PasswordHash, req.Password)) {
		// Same answer for unknown user and wrong password.
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to authenticate", err)
		return
	}
	if !user.IsActive {
		respondError(w, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled", nil)
		return
	}

	token, err := s.jwt.GenerateToken(user.UserID, user.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token", err)
		return
	}

	respondData(w, http.StatusOK, TokenResponse{
		Token:    token,
		UserID:   user.UserID,
		Username: user.Username,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing authentication", nil)
		return
	}

	user, err := s.db.GetUserByID(r.Context(), claims.UserID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "USER_NOT_FOUND", "Account no longer exists", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load account", err)
		return
	}

	respondData(w, http.StatusOK, user)
}

// currentUserID extracts the authenticated user id, responding 401 on
// absence. Handlers behind the JWT middleware use it as their first step.
func currentUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing authentication", nil)
		return 0, false
	}
	return claims.UserID, true
}
