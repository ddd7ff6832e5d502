// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Database query performance (DuckDB)
// - API endpoint latency and throughput
// - Recommendation serving (warm vs cold-start split)
// - Offline segmentation runs

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	DBConnectionPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "duckdb_connection_pool_size",
			Help: "Current number of database connections in use",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Serving Metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation responses by ranking source",
		},
		[]string{"source"}, // "genre_affinity", "popularity"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation computation in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RecommendationSkippedEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_skipped_events_total",
			Help: "Watch events skipped during affinity counting because their movie is not in the catalog",
		},
	)

	// Segmentation Run Metrics
	SegmentationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "segmentation_runs_total",
			Help: "Total number of offline segmentation runs",
		},
		[]string{"outcome"}, // "success", "error", "skipped"
	)

	SegmentationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "segmentation_duration_seconds",
			Help:    "Duration of offline segmentation runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
	)

	SegmentationChosenK = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "segmentation_chosen_k",
			Help: "Segment count selected by the most recent successful run",
		},
	)

	SegmentationSilhouette = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "segmentation_silhouette_score",
			Help: "Silhouette score of the most recent successful run",
		},
	)

	SegmentationLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "segmentation_last_success_timestamp",
			Help: "Unix timestamp of the last successful segmentation run",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendation records one served recommendation response
func RecordRecommendation(source string, duration time.Duration) {
	RecommendationsServed.WithLabelValues(source).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordSegmentationRun records the outcome of an offline segmentation run
func RecordSegmentationRun(duration time.Duration, k int, silhouette float64, err error) {
	SegmentationDuration.Observe(duration.Seconds())
	if err != nil {
		SegmentationRuns.WithLabelValues("error").Inc()
		return
	}
	SegmentationRuns.WithLabelValues("success").Inc()
	SegmentationChosenK.Set(float64(k))
	SegmentationSilhouette.Set(silhouette)
	SegmentationLastSuccess.Set(float64(time.Now().Unix()))
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
