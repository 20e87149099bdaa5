// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Limit is a per-client request budget.
type Limit struct {
	Requests int
	Window   time.Duration
}

// MiddlewareConfig configures the request guards in front of the API.
type MiddlewareConfig struct {
	// CORSOrigins lists browser origins allowed to call the API. Empty
	// allows none; "*" allows any.
	CORSOrigins []string

	// APILimit applies to /api/v1/titles and /api/v1/recommendations.
	APILimit Limit

	// HealthLimit applies to the probe endpoints.
	HealthLimit Limit

	// LimitDisabled turns off both limits.
	LimitDisabled bool

	// KeyFunc identifies a client. Default httprate.KeyByIP, which sees the
	// address set by chi's RealIP.
	KeyFunc httprate.KeyFunc
}

// DefaultMiddlewareConfig allows no cross-origin callers, 100 API requests
// per minute and 1000 probes per minute per client.
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{
		APILimit:    Limit{Requests: 100, Window: time.Minute},
		HealthLimit: Limit{Requests: 1000, Window: time.Minute},
	}
}

// Middleware holds the configured guards for Router.
type Middleware struct {
	cfg  MiddlewareConfig
	cors func(http.Handler) http.Handler
}

// NewMiddleware builds the CORS handler once; limiters are built per route
// group so each group keeps its own counters.
func NewMiddleware(cfg MiddlewareConfig) *Middleware {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = httprate.KeyByIP
	}
	return &Middleware{
		cfg: cfg,
		cors: cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
			MaxAge:         86400,
		}),
	}
}

// CORS must run globally so preflight OPTIONS requests reach it before
// route matching.
func (m *Middleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// APILimit is the lookup endpoints' limiter.
func (m *Middleware) APILimit() func(http.Handler) http.Handler {
	return m.limit("api", m.cfg.APILimit)
}

// HealthLimit is the probe endpoints' limiter.
func (m *Middleware) HealthLimit() func(http.Handler) http.Handler {
	return m.limit("health", m.cfg.HealthLimit)
}

// limit rejects over-budget clients with a TOO_MANY_REQUESTS envelope and
// counts the rejection under group.
func (m *Middleware) limit(group string, l Limit) func(http.Handler) http.Handler {
	if m.cfg.LimitDisabled || l.Requests <= 0 || l.Window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	retryAfter := strconv.Itoa(int((l.Window + time.Second - 1) / time.Second))
	return httprate.Limit(l.Requests, l.Window,
		httprate.WithKeyFuncs(m.cfg.KeyFunc),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(group).Inc()
			if w.Header().Get("Retry-After") == "" {
				w.Header().Set("Retry-After", retryAfter)
			}
			NewResponseWriter(w, r).TooManyRequests("Rate limit exceeded, please retry later")
		}),
	)
}

// SecurityHeaders sets nosniff, frame denial and referrer policy, plus HSTS
// when the request arrived over TLS directly or via a proxy.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}

// NoStore keeps probe answers out of browser and proxy caches.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
