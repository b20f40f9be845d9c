// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

// Package metrics provides Prometheus instrumentation for the service:
// ranking engine throughput and latency, document store operations, and
// HTTP request metrics. All collectors are registered on the default
// registry via promauto and exposed at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Engine Metrics
	RankingRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outfit_ranking_requests_total",
			Help: "Total number of candidate ranking runs",
		},
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outfit_ranking_duration_seconds",
			Help:    "Duration of candidate ranking runs in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RankingCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outfit_ranking_candidates",
			Help:    "Number of candidates evaluated per ranking run",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)

	DeadEndChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_deadend_checks_total",
			Help: "Total number of dead-end lookaheads by outcome",
		},
		[]string{"outcome"}, // "dead_end", "open"
	)

	// Store Metrics
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total number of document store operations",
		},
		[]string{"operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Total number of document store operation errors",
		},
		[]string{"operation"},
	)

	WardrobeItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wardrobe_items",
			Help: "Current number of wardrobe items by category",
		},
		[]string{"category"},
	)

	// API Metrics
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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordRanking records one completed ranking run.
func RecordRanking(candidates int, duration time.Duration) {
	RankingRequestsTotal.Inc()
	RankingDuration.Observe(duration.Seconds())
	RankingCandidates.Observe(float64(candidates))
}

// RecordDeadEndCheck records one dead-end lookahead outcome.
func RecordDeadEndCheck(deadEnd bool) {
	outcome := "open"
	if deadEnd {
		outcome = "dead_end"
	}
	DeadEndChecksTotal.WithLabelValues(outcome).Inc()
}

// RecordStoreOperation records one store operation and its outcome.
func RecordStoreOperation(operation string, err error) {
	StoreOperations.WithLabelValues(operation).Inc()
	if err != nil {
		StoreErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
