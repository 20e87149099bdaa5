// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrClosed is returned by a Store after Close.
var ErrClosed = errors.New("cache store is closed")

// Store is a byte-oriented key/value store with per-entry expiry.
// Implementations must never return an entry whose TTL has elapsed and must
// tolerate concurrent readers and writers on the same key (last write wins).
type Store interface {
	// Get returns the value for key. ok is false on a miss or expired entry.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Name identifies the backend in logs and metrics.
	Name() string

	// Close releases the store.
	Close() error
}

// StoreType selects a Store implementation.
type StoreType string

const (
	// StoreBadger persists entries on disk and survives restarts (default).
	StoreBadger StoreType = "badger"

	// StoreMemory keeps entries in process memory only.
	StoreMemory StoreType = "memory"
)

// Config holds configuration for creating a Store.
type Config struct {
	// Type is the backend (badger or memory).
	Type StoreType

	// Path is the Badger directory. Ignored for memory.
	Path string

	// InMemory runs Badger without touching disk. Used by tests.
	InMemory bool

	// CleanupInterval is how often the memory store sweeps expired entries.
	CleanupInterval time.Duration
}

// NewStore creates a Store from cfg.
//
// Example:
//
//	store, err := cache.NewStore(cache.Config{Type: cache.StoreBadger, Path: "/data/poster-cache"})
func NewStore(cfg Config) (Store, error) {
	switch cfg.Type {
	case StoreMemory:
		return NewMemoryStore(cfg.CleanupInterval), nil
	case StoreBadger, "":
		return OpenBadgerStore(cfg.Path, cfg.InMemory)
	default:
		return nil, fmt.Errorf("unknown cache store type %q", cfg.Type)
	}
}
