// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"context"
	"sync"
	"time"
)

// entry represents a cached value with expiration
type entry struct {
	data      []byte
	expiresAt time.Time
}

// Stats tracks cache performance metrics
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// MemoryStore provides a thread-safe in-memory Store with TTL support.
// Entries do not survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry

	statsMu sync.RWMutex
	stats   Stats

	closeOnce sync.Once
	done      chan struct{}
	closed    bool
}

// NewMemoryStore creates an in-memory store that sweeps expired entries every
// cleanupInterval (5 minutes when zero).
//
// Example:
//
//	store := cache.NewMemoryStore(0)
//	defer store.Close()
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}

	s := &MemoryStore{
		entries: make(map[string]entry),
		stats:   Stats{LastCleanup: time.Now()},
		done:    make(chan struct{}),
	}

	go s.cleanupLoop(cleanupInterval)

	return s
}

// Name implements Store.
func (s *MemoryStore) Name() string {
	return string(StoreMemory)
}

// Get retrieves a value by key. Expired entries are removed and counted as misses.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, false, ErrClosed
	}
	e, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists {
		s.recordMiss()
		return nil, false, nil
	}

	if !time.Now().Before(e.expiresAt) {
		s.mu.Lock()
		// Only drop it if no newer write replaced it meanwhile.
		if cur, ok := s.entries[key]; ok && !time.Now().Before(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		s.recordMiss()
		s.recordEviction()
		return nil, false, nil
	}

	s.recordHit()
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, true, nil
}

// Set stores a copy of value with the given TTL, replacing any existing entry.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	data := make([]byte, len(value))
	copy(data, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.entries[key] = entry{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	}

	s.statsMu.Lock()
	s.stats.TotalKeys = int64(len(s.entries))
	s.statsMu.Unlock()

	return nil
}

// Delete removes a specific entry by key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()

	s.recordEviction()
	return nil
}

// Clear removes all entries.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	evictions := int64(len(s.entries))
	s.entries = make(map[string]entry)
	s.mu.Unlock()

	s.statsMu.Lock()
	s.stats.Evictions += evictions
	s.stats.TotalKeys = 0
	s.statsMu.Unlock()

	return nil
}

// Close stops the cleanup goroutine and rejects further use.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.entries = make(map[string]entry)
		s.mu.Unlock()
		close(s.done)
	})
	return nil
}

// GetStats returns a snapshot of current cache statistics.
func (s *MemoryStore) GetStats() Stats {
	s.statsMu.RLock()
	defer s.statsMu.RUnlock()
	return s.stats
}

// HitRate returns the cache hit rate as a percentage
func (s *MemoryStore) HitRate() float64 {
	stats := s.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// cleanupLoop periodically removes expired entries
func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes all expired entries
func (s *MemoryStore) cleanup() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	evictions := int64(0)
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
			evictions++
		}
	}

	s.statsMu.Lock()
	s.stats.Evictions += evictions
	s.stats.TotalKeys = int64(len(s.entries))
	s.stats.LastCleanup = now
	s.statsMu.Unlock()
}

func (s *MemoryStore) recordHit() {
	s.statsMu.Lock()
	s.stats.Hits++
	s.statsMu.Unlock()
}

func (s *MemoryStore) recordMiss() {
	s.statsMu.Lock()
	s.stats.Misses++
	s.statsMu.Unlock()
}

func (s *MemoryStore) recordEviction() {
	s.statsMu.Lock()
	s.stats.Evictions++
	s.statsMu.Unlock()
}

var _ Store = (*MemoryStore)(nil)
