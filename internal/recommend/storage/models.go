// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package storage defines the persisted artifacts of an offline
// segmentation run. Artifacts are encoded as JSON so any structured
// store can hold them; float64 values round-trip exactly through the
// encoder, which matters because assignment decisions depend on them.
package storage

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/reelrank/internal/recommend/features"
)

// SegmentModel is everything one offline run fitted: the
// normalization transforms, the genre vocabulary the title vectors
// were built over, and the centroids of the chosen partition. A
// vector transformed with these params is comparable to the stored
// centroids; re-deriving any of it from a changed catalog is not.
type SegmentModel struct {
	// RunID identifies the run that produced this model in logs.
	RunID string `json:"run_id"`

	FittedAt   time.Time `json:"fitted_at"`
	Seed       int64     `json:"seed"`
	K          int       `json:"k"`
	Silhouette float64   `json:"silhouette"`
	Users      int       `json:"users"`

	UserColumns []string        `json:"user_columns"`
	UserParams  features.Params `json:"user_params"`
	Centroids   [][]float64     `json:"centroids"`

	TitleParams features.Params     `json:"title_params"`
	Vocabulary  features.Vocabulary `json:"vocabulary"`
}

// Encode serializes the model for persistence.
func (m *SegmentModel) Encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode segment model: %w", err)
	}
	return data, nil
}

// DecodeSegmentModel deserializes a previously encoded model.
func DecodeSegmentModel(data []byte) (*SegmentModel, error) {
	var m SegmentModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode segment model: %w", err)
	}
	return &m, nil
}

// Assignment maps one user to the segment fitted for them.
type Assignment struct {
	UserID    int `json:"user_id"`
	SegmentID int `json:"segment_id"`
}
