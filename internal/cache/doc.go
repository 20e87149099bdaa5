// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package cache provides the persistent HTTP response cache used for poster
metadata lookups.

# Overview

The package has two layers:

  - Store: a byte-oriented key/value store with per-entry TTL. BadgerStore
    persists entries on disk using Badger's native TTL; MemoryStore keeps
    them in a mutex-guarded map with a background sweeper.
  - Transport: an http.RoundTripper that answers GET requests from a Store
    and falls through to an underlying transport on a miss.

# Caching Rules

  - Only GET requests are considered.
  - The key is a SHA-256 of the method and the URL with sorted query
    parameters, so parameter order does not matter.
  - Only 200 responses are stored; errors are always fetched again.
  - An entry is served for TTL (24 hours by default) and never after.
  - Writes to the same key are last-writer-wins.
  - A store failure never fails the request.

Responses served from the store carry the header X-Reelmatch-Cache: HIT.

# Usage

	store, err := cache.OpenBadgerStore("/var/lib/reelmatch/cache", false)
	if err != nil {
	    return err
	}
	defer store.Close()

	client := &http.Client{
	    Timeout:   10 * time.Second,
	    Transport: cache.NewTransport(http.DefaultTransport, store, 24*time.Hour),
	}

# Maintenance

Badger reclaims expired entries during compaction, but the value log needs
periodic garbage collection. services.CacheGCService runs BadgerStore.RunGC
on an interval under the supervisor tree.
*/
package cache
