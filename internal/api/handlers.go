// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/lookup"
)

// LookupService answers recommendation lookups.
type LookupService interface {
	Lookup(ctx context.Context, title string) lookup.Result
	Titles() []string
}

// BreakerState reports the TMDB circuit breaker state.
type BreakerState interface {
	State() string
}

// HandlerConfig carries the handler's dependencies.
type HandlerConfig struct {
	Lookup  LookupService
	Cache   cache.Store
	Breaker BreakerState
	Version string
}

// Handler serves the HTTP API.
type Handler struct {
	lookup    LookupService
	cache     cache.Store
	breaker   BreakerState
	version   string
	startTime time.Time
}

// NewHandler creates a new API handler. Cache and Breaker may be nil.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		lookup:    cfg.Lookup,
		cache:     cfg.Cache,
		breaker:   cfg.Breaker,
		version:   cfg.Version,
		startTime: time.Now(),
	}
}
