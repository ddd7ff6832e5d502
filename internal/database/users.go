// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/reelrank/internal/models"
)

// CreateUser inserts a new account and returns it with its assigned id.
func (db *DB) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	start := time.Now()

	var user models.User
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES (?, ?, ?)
		RETURNING user_id, username, email, password_hash, created_at, is_active`,
		username, email, passwordHash,
	).Scan(&user.UserID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.IsActive)
	observe("insert", "users", start, err)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername fetches one account, ErrNotFound if absent.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	start := time.Now()

	var user models.User
	err := db.conn.QueryRowContext(ctx, `
		SELECT user_id, username, email, password_hash, created_at, is_active
		FROM users WHERE username = ?`,
		username,
	).Scan(&user.UserID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.IsActive)
	observe("select", "users", start, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}

// GetUserByID fetches one account, ErrNotFound if absent.
func (db *DB) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	start := time.Now()

	var user models.User
	err := db.conn.QueryRowContext(ctx, `
		SELECT user_id, username, email, password_hash, created_at, is_active
		FROM users WHERE user_id = ?`,
		userID,
	).Scan(&user.UserID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.IsActive)
	observe("select", "users", start, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &user, nil
}

// AllUserIDs returns every active user id in ascending order. Feeds the
// offline segmentation population.
func (db *DB) AllUserIDs(ctx context.Context) ([]int, error) {
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT user_id FROM users WHERE is_active ORDER BY user_id`)
	observe("select", "users", start, err)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}
	return ids, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
