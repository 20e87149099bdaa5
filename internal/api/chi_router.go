// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelmatch/internal/middleware"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler     *Handler
	guards      *Middleware
	slowRequest time.Duration
}

// NewRouter creates a router. A nil guards uses DefaultMiddlewareConfig.
func NewRouter(handler *Handler, guards *Middleware) *Router {
	if guards == nil {
		guards = NewMiddleware(DefaultMiddlewareConfig())
	}
	return &Router{
		handler:     handler,
		guards:      guards,
		slowRequest: middleware.DefaultSlowRequestThreshold,
	}
}

// SetSlowRequestThreshold overrides the access log slow-request threshold.
func (router *Router) SetSlowRequestThreshold(d time.Duration) {
	router.slowRequest = d
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(middleware.RequestID)                     // X-Request-ID header and logging context
	r.Use(chimiddleware.RealIP)                     // Extract real IP from X-Forwarded-For
	r.Use(middleware.AccessLog(router.slowRequest)) // Request logging with slow request warnings
	r.Use(chimiddleware.Recoverer)                  // Recover from panics
	r.Use(router.guards.CORS())                     // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)             // Request counters and latency histograms

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).MethodNotAllowed("Method not allowed")
	})

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.guards.HealthLimit())
		r.Use(SecurityHeaders)
		r.Use(NoStore)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Lookup API
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.guards.APILimit())
		r.Use(SecurityHeaders)
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/titles", router.handler.Titles)
		r.Get("/recommendations", router.handler.Recommendations)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Static Files
	// ========================
	r.Get(PlaceholderPath, PosterPlaceholder)
	r.Head(PlaceholderPath, PosterPlaceholder)

	return r
}
