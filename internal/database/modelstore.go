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
	"time"

	"github.com/tomtom215/reelrank/internal/recommend/storage"
)

// SaveSegmentation persists one offline run: the encoded model plus
// the full assignment mapping, replaced wholesale in one transaction
// so readers never see a half-written run.
func (db *DB) SaveSegmentation(ctx context.Context, model *storage.SegmentModel, assignments []storage.Assignment) error {
	encoded, err := model.Encode()
	if err != nil {
		return err
	}

	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin segmentation save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var modelID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO segment_models (fitted_at, k, silhouette, users, artifact)
		VALUES (?, ?, ?, ?, ?)
		RETURNING model_id`,
		model.FittedAt, model.K, model.Silhouette, model.Users, string(encoded),
	).Scan(&modelID)
	if err != nil {
		observe("insert", "segment_models", start, err)
		return fmt.Errorf("insert segment model: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM segment_assignments`); err != nil {
		observe("delete", "segment_assignments", start, err)
		return fmt.Errorf("clear segment assignments: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO segment_assignments (user_id, segment_id, model_id) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare assignment insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // statement bound to tx

	for _, a := range assignments {
		if _, err := stmt.ExecContext(ctx, a.UserID, a.SegmentID, modelID); err != nil {
			observe("insert", "segment_assignments", start, err)
			return fmt.Errorf("insert assignment for user %d: %w", a.UserID, err)
		}
	}

	err = tx.Commit()
	observe("insert", "segment_models", start, err)
	if err != nil {
		return fmt.Errorf("commit segmentation save: %w", err)
	}
	return nil
}

// LatestSegmentation returns the most recently fitted model, decoded,
// or ErrNotFound when no run has completed yet.
func (db *DB) LatestSegmentation(ctx context.Context) (*storage.SegmentModel, error) {
	start := time.Now()

	var encoded string
	err := db.conn.QueryRowContext(ctx, `
		SELECT artifact FROM segment_models
		ORDER BY model_id DESC LIMIT 1`,
	).Scan(&encoded)
	observe("select", "segment_models", start, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load latest segmentation: %w", err)
	}
	return storage.DecodeSegmentModel([]byte(encoded))
}

// UserSegment returns the user's segment from the most recent run, or
// ErrNotFound when the user was not part of it.
func (db *DB) UserSegment(ctx context.Context, userID int) (int, error) {
	start := time.Now()

	var segmentID int
	err := db.conn.QueryRowContext(ctx, `
		SELECT segment_id FROM segment_assignments WHERE user_id = ?`,
		userID,
	).Scan(&segmentID)
	observe("select", "segment_assignments", start, err)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get user segment: %w", err)
	}
	return segmentID, nil
}
