// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and are
exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8501/metrics

# Available Metrics

API Metrics:
  - reelmatch_api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - reelmatch_api_request_duration_seconds: Request latency (histogram)
  - reelmatch_api_active_requests: In-flight requests (gauge)
  - reelmatch_api_rate_limit_hits_total: Rate limit rejections (counter)

Recommender Metrics:
  - reelmatch_recommend_requests_total: Lookups by outcome (found, not_found)
  - reelmatch_recommend_skipped_total: Neighbours dropped for a missing movie_id
  - reelmatch_recommend_duration_seconds: Time to rank one similarity row

Poster Metrics:
  - reelmatch_poster_fetch_total: Resolutions by result (poster, placeholder)
  - reelmatch_poster_fallback_total: Placeholder fallbacks by kind
    (http_status, transport, decode, missing_poster, circuit_open)
  - reelmatch_poster_fetch_duration_seconds: Resolution latency

Response Cache Metrics:
  - reelmatch_cache_hits_total / reelmatch_cache_misses_total
  - reelmatch_cache_stores_total
  - reelmatch_cache_errors_total (labels: store, operation)

Circuit Breaker Metrics:
  - reelmatch_circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - reelmatch_circuit_breaker_requests_total (labels: name, result)
  - reelmatch_circuit_breaker_consecutive_failures
  - reelmatch_circuit_breaker_state_transitions_total

Model Metrics:
  - reelmatch_model_movies: Catalog rows loaded at startup
  - reelmatch_model_load_duration_seconds: Startup load time

# Usage

	start := time.Now()
	// ... resolve a poster ...
	metrics.RecordPoster(kind, time.Since(start))

# Example Queries

Placeholder rate over five minutes:

	sum(rate(reelmatch_poster_fetch_total{result="placeholder"}[5m]))
	  / sum(rate(reelmatch_poster_fetch_total[5m]))

Cache hit ratio:

	sum(rate(reelmatch_cache_hits_total[5m]))
	  / (sum(rate(reelmatch_cache_hits_total[5m])) + sum(rate(reelmatch_cache_misses_total[5m])))
*/
package metrics
