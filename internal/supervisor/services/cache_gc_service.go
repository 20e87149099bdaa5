// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// Default value-log GC settings for the poster cache.
const (
	DefaultGCInterval     = 10 * time.Minute
	DefaultGCDiscardRatio = 0.5
)

// GarbageCollector is satisfied by *cache.BadgerStore.
type GarbageCollector interface {
	RunGC(ratio float64) error
}

// CacheGCService periodically reclaims space in the Badger value log.
//
// Expired poster entries are dropped by Badger lazily; without GC the value
// log only grows. A failed GC pass returns an error so the supervisor
// restarts the loop with backoff.
type CacheGCService struct {
	store    GarbageCollector
	interval time.Duration
	ratio    float64
	name     string
}

// NewCacheGCService creates a GC loop for store. Non-positive interval or a
// ratio outside (0, 1) fall back to the defaults.
func NewCacheGCService(store GarbageCollector, interval time.Duration, ratio float64) *CacheGCService {
	if interval <= 0 {
		interval = DefaultGCInterval
	}
	if ratio <= 0 || ratio >= 1 {
		ratio = DefaultGCDiscardRatio
	}
	return &CacheGCService{
		store:    store,
		interval: interval,
		ratio:    ratio,
		name:     "cache-gc",
	}
}

// Serve implements suture.Service.
func (s *CacheGCService) Serve(ctx context.Context) error {
	logger := logging.WithComponent(s.name)
	logger.Debug().Dur("interval", s.interval).Float64("discard_ratio", s.ratio).Msg("Cache GC loop started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunGC(s.ratio); err != nil {
				return fmt.Errorf("cache gc: %w", err)
			}
			logger.Debug().Dur("duration", time.Since(start)).Msg("Cache GC pass complete")
		}
	}
}

// String identifies the service in supervisor events.
func (s *CacheGCService) String() string {
	return s.name
}
