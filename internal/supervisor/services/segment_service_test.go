// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// mockRunner counts runs and returns a canned result or error.
type mockRunner struct {
	runs   atomic.Int32
	result *recommend.SegmentationResult
	err    error
}

func (m *mockRunner) Run(_ context.Context) (*recommend.SegmentationResult, error) {
	m.runs.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func TestSegmentServiceInterface(t *testing.T) {
	var _ suture.Service = (*SegmentService)(nil)
}

func TestSegmentServiceTrainOnStartup(t *testing.T) {
	runner := &mockRunner{result: &recommend.SegmentationResult{K: 3, Silhouette: 0.8, Users: 10}}
	svc := NewSegmentService(runner, SegmentServiceConfig{
		TrainOnStartup: true,
		TrainInterval:  time.Hour,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.After(5 * time.Second)
	for runner.runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("startup run did not happen within 5s")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop within 5s")
	}
}

func TestSegmentServicePeriodicRuns(t *testing.T) {
	runner := &mockRunner{result: &recommend.SegmentationResult{K: 2}}
	svc := NewSegmentService(runner, SegmentServiceConfig{
		TrainInterval: 10 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.After(5 * time.Second)
	for runner.runs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("expected at least 2 scheduled runs within 5s")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-errCh
}

func TestSegmentServiceSurvivesRunErrors(t *testing.T) {
	runner := &mockRunner{err: errors.New("no users to segment")}
	svc := NewSegmentService(runner, SegmentServiceConfig{
		TrainOnStartup: true,
		TrainInterval:  10 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	// Failing runs must not terminate the loop.
	deadline := time.After(5 * time.Second)
	for runner.runs.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("expected repeated runs despite errors")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop within 5s")
	}
}

func TestSegmentServiceSkipsOverlappingRun(t *testing.T) {
	runner := &mockRunner{err: recommend.ErrSegmentationInProgress}
	svc := NewSegmentService(runner, SegmentServiceConfig{TrainOnStartup: true, TrainInterval: time.Hour}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.After(5 * time.Second)
	for runner.runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("startup run did not happen within 5s")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-errCh
}
