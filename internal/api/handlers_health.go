// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
)

const readinessProbeKey = "reelmatch:readiness-probe"

const cacheProbeTimeout = 2 * time.Second

// LiveResponse is returned by the liveness probe.
type LiveResponse struct {
	Alive   bool    `json:"alive"`
	Version string  `json:"version,omitempty"`
	Uptime  float64 `json:"uptime"`
}

// ReadyResponse is returned by the readiness probe.
type ReadyResponse struct {
	Ready   bool   `json:"ready"`
	Status  string `json:"status"`
	Movies  int    `json:"movies"`
	Cache   string `json:"cache"`
	Breaker string `json:"breaker,omitempty"`
}

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(LiveResponse{
		Alive:   true,
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests.
//
// The service is ready once the catalog is loaded and the poster cache
// answers. An open TMDB circuit only degrades the status since lookups still
// succeed with placeholder posters.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	resp := ReadyResponse{
		Movies: len(h.lookup.Titles()),
		Cache:  h.cacheStatus(r.Context()),
	}
	if h.breaker != nil {
		resp.Breaker = h.breaker.State()
	}

	resp.Ready = resp.Movies > 0 && resp.Cache != "error"
	switch {
	case !resp.Ready:
		resp.Status = "unavailable"
	case resp.Breaker == "open":
		resp.Status = "degraded"
	default:
		resp.Status = "healthy"
	}

	if !resp.Ready {
		rw.ServiceUnavailable("Service not ready", resp)
		return
	}
	rw.Success(resp)
}

func (h *Handler) cacheStatus(ctx context.Context) string {
	if h.cache == nil {
		return "disabled"
	}

	ctx, cancel := context.WithTimeout(ctx, cacheProbeTimeout)
	defer cancel()

	if _, _, err := h.cache.Get(ctx, readinessProbeKey); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("store", h.cache.Name()).Msg("Cache readiness probe failed")
		return "error"
	}
	return "ok"
}
