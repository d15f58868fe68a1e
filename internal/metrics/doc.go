// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:3000/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: 429 responses (counter)

Domain Metrics:
  - wayfarer_list_operations_total: list create/update/delete by result
  - wayfarer_review_operations_total: review submit/toggle by result
  - wayfarer_search_requests_total: searches by mode and outcome
  - wayfarer_search_results: result size per search (histogram)
  - wayfarer_auth_failures_total, wayfarer_authz_denials_total

Event Metrics:
  - wayfarer_events_published_total, wayfarer_event_publish_failures_total
  - wayfarer_events_forwarded_total: bus to websocket fan-out
  - circuit_breaker_state, circuit_breaker_requests_total,
    circuit_breaker_state_transitions_total

Recording helpers (RecordAPIRequest, RecordSearch, ...) keep label values
consistent across packages; prefer them over touching collectors directly.
*/
package metrics
