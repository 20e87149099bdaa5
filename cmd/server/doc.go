// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package main is the entry point for the Reelmatch server.

Reelmatch answers "movies like this one" from a precomputed similarity
matrix and decorates each pick with its TMDB poster.

# Startup

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog from LOG_LEVEL, LOG_FORMAT, LOG_CALLER
 3. Model: catalog and similarity matrix, fail-fast on any error
 4. Poster cache: Badger on disk (or in memory) with a 24h TTL
 5. Poster fetcher: TMDB client behind rate limiter and circuit breaker
 6. HTTP API: Chi router on :8501
 7. Supervisor: suture tree running the HTTP server and cache GC

The process exits non-zero before listening if either model artifact is
missing, unreadable or inconsistent with the other.

# Example Usage

	export TMDB_API_KEY=your-tmdb-key
	export CATALOG_PATH=./model/movies.json
	export SIMILARITY_PATH=./model/similarity.npy
	export CACHE_PATH=./data/cache
	./reelmatch

Docker:

	docker run -d \
	  -e TMDB_API_KEY=your-tmdb-key \
	  -v ./model:/data/model:ro \
	  -v reelmatch-cache:/data/cache \
	  -p 8501:8501 \
	  ghcr.io/tomtom215/reelmatch

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for SHUTDOWN_TIMEOUT, then the poster cache is closed.
*/
package main
