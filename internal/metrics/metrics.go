// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
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
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
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
		[]string{"limiter"}, // global, auth, write, websocket, health
	)

	// Domain Metrics
	ListOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_list_operations_total",
			Help: "List operations by kind and result",
		},
		[]string{"operation", "result"}, // operation: create, update, delete; result: ok, conflict, forbidden, not_found, invalid, error
	)

	ReviewOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_review_operations_total",
			Help: "Review submissions and visibility toggles by result",
		},
		[]string{"operation", "result"},
	)

	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_search_requests_total",
			Help: "Destination searches by matching mode and outcome",
		},
		[]string{"mode", "outcome"}, // outcome: match, no_match, no_data
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfarer_search_results",
			Help:    "Number of destinations returned per search",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_auth_failures_total",
			Help: "Authentication failures by reason",
		},
		[]string{"reason"}, // missing, invalid, disabled, credentials, throttled
	)

	AuthzDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_authz_denials_total",
			Help: "Authorization denials by reason code",
		},
		[]string{"reason"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_events_published_total",
			Help: "Domain events published by type",
		},
		[]string{"event_type"},
	)

	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_event_publish_failures_total",
			Help: "Domain events that failed to publish, by type",
		},
		[]string{"event_type"},
	)

	EventsForwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wayfarer_events_forwarded_total",
			Help: "Events forwarded from the bus to websocket clients",
		},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wayfarer_catalog_destinations",
			Help: "Number of destinations in the loaded catalog",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimited counts a request rejected by the named limiter.
func RecordRateLimited(limiter string) {
	APIRateLimitHits.WithLabelValues(limiter).Inc()
}

// RecordListOperation counts a list create, update or delete.
func RecordListOperation(operation, result string) {
	ListOperations.WithLabelValues(operation, result).Inc()
}

// RecordReviewOperation counts a review submission or visibility toggle.
func RecordReviewOperation(operation, result string) {
	ReviewOperations.WithLabelValues(operation, result).Inc()
}

// RecordSearch counts a search and observes its result size.
func RecordSearch(mode, outcome string, results int) {
	SearchRequests.WithLabelValues(mode, outcome).Inc()
	SearchResults.Observe(float64(results))
}

func RecordAuthFailure(reason string) {
	AuthFailures.WithLabelValues(reason).Inc()
}

func RecordAuthzDenial(reason string) {
	AuthzDenials.WithLabelValues(reason).Inc()
}

// RecordEventPublish counts a publish attempt for eventType.
func RecordEventPublish(eventType string, err error) {
	if err != nil {
		EventPublishFailures.WithLabelValues(eventType).Inc()
		return
	}
	EventsPublished.WithLabelValues(eventType).Inc()
}

// RecordCircuitBreakerTransition updates the state gauge and counts the
// transition. States use gobreaker's String() names.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
