// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

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
			Name: "reelmatch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15}, // lookups can wait on a 10s poster fetch
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommender Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_recommend_requests_total",
			Help: "Total number of similarity lookups",
		},
		[]string{"outcome"}, // "found", "not_found"
	)

	RecommendSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmatch_recommend_skipped_total",
			Help: "Total number of neighbours skipped because their movie_id is missing",
		},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_recommend_duration_seconds",
			Help:    "Time spent ranking one similarity row",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// Poster Metrics
	PosterFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_poster_fetch_total",
			Help: "Total number of poster resolutions",
		},
		[]string{"result"}, // "poster", "placeholder"
	)

	PosterFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_poster_fallback_total",
			Help: "Total number of placeholder fallbacks by cause",
		},
		[]string{"kind"},
	)

	PosterFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_poster_fetch_duration_seconds",
			Help:    "Poster resolution time including cache lookups",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// Response Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_cache_hits_total",
			Help: "Total number of response cache hits",
		},
		[]string{"store"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_cache_misses_total",
			Help: "Total number of response cache misses",
		},
		[]string{"store"},
	)

	CacheStores = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_cache_stores_total",
			Help: "Total number of responses written to the cache",
		},
		[]string{"store"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_cache_errors_total",
			Help: "Total number of cache store errors",
		},
		[]string{"store", "operation"}, // operation: "get", "set", "decode"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reelmatch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reelmatch_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Model Metrics
	ModelMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_model_movies",
			Help: "Number of catalog rows in the loaded model",
		},
	)

	ModelLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_model_load_duration_seconds",
			Help: "Time taken to load and validate the model at startup",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reelmatch_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
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

// RecordRecommendation records one similarity lookup.
func RecordRecommendation(found bool, skipped int, duration time.Duration) {
	outcome := "not_found"
	if found {
		outcome = "found"
	}
	RecommendRequests.WithLabelValues(outcome).Inc()
	if skipped > 0 {
		RecommendSkipped.Add(float64(skipped))
	}
	RecommendDuration.Observe(duration.Seconds())
}

// RecordPoster records one poster resolution. kind is empty when a real
// poster was returned.
func RecordPoster(kind string, duration time.Duration) {
	if kind == "" {
		PosterFetches.WithLabelValues("poster").Inc()
	} else {
		PosterFetches.WithLabelValues("placeholder").Inc()
		PosterFallbacks.WithLabelValues(kind).Inc()
	}
	PosterFetchDuration.Observe(duration.Seconds())
}

// RecordCacheLookup records a response cache hit or miss.
func RecordCacheLookup(store string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(store).Inc()
	} else {
		CacheMisses.WithLabelValues(store).Inc()
	}
}

// RecordCacheStore records a response written to the cache.
func RecordCacheStore(store string) {
	CacheStores.WithLabelValues(store).Inc()
}

// RecordCacheError records a failed cache operation.
func RecordCacheError(store, operation string) {
	CacheErrors.WithLabelValues(store, operation).Inc()
}

// RecordModelLoad records the size and load time of the startup model.
func RecordModelLoad(movies int, duration time.Duration) {
	ModelMovies.Set(float64(movies))
	ModelLoadDuration.Set(duration.Seconds())
}
