// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// badgerKeyPrefix namespaces cache entries inside the Badger directory.
const badgerKeyPrefix = "cache:"

// BadgerStore implements Store on BadgerDB. Expiry uses Badger's native
// per-entry TTL, so expired entries are invisible to reads and reclaimed
// during compaction.
type BadgerStore struct {
	db     *badger.DB
	closed atomic.Bool
}

// OpenBadgerStore opens (or creates) a Badger directory at path.
// With inMemory set, path is ignored and nothing is written to disk.
func OpenBadgerStore(path string, inMemory bool) (*BadgerStore, error) {
	if path == "" && !inMemory {
		return nil, errors.New("badger cache path is required")
	}

	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for cache: %w", err)
	}

	return &BadgerStore{db: db}, nil
}

// NewBadgerStoreFromDB wraps an already open database. The caller keeps
// ownership of db; Close on the store closes it.
func NewBadgerStoreFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Name implements Store.
func (s *BadgerStore) Name() string {
	return string(StoreBadger)
}

// Get retrieves an entry. Badger reports expired keys as not found.
func (s *BadgerStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if s.closed.Load() {
		return nil, false, ErrClosed
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cache entry: %w", err)
	}

	return value, true, nil
}

// Set stores an entry with ttl. A non-positive ttl stores nothing.
func (s *BadgerStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if ttl <= 0 {
		return nil
	}

	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(badgerKeyPrefix+key), value).WithTTL(ttl)
		if err := txn.SetEntry(e); err != nil {
			return fmt.Errorf("set cache entry: %w", err)
		}
		return nil
	})
}

// Delete removes an entry.
func (s *BadgerStore) Delete(_ context.Context, key string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(badgerKeyPrefix + key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete cache entry: %w", err)
		}
		return nil
	})
}

// Clear drops every cache entry.
func (s *BadgerStore) Clear(_ context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := s.db.DropPrefix([]byte(badgerKeyPrefix)); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// RunGC runs value log garbage collection until nothing more can be reclaimed.
// In-memory databases have no value log and return nil.
func (s *BadgerStore) RunGC(ratio float64) error {
	if s.closed.Load() {
		return ErrClosed
	}

	for {
		err := s.db.RunValueLogGC(ratio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close closes the database. It is safe to call more than once.
func (s *BadgerStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}

var _ Store = (*BadgerStore)(nil)
