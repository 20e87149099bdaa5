// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config provides centralized configuration management for Reelmatch.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The file is CONFIG_PATH when set,
otherwise the first of config.yaml, config.yml, /etc/reelmatch/config.yaml
and /etc/reelmatch/config.yml that exists.

# Environment Variables

TMDB (TMDBConfig):
  - API_KEY: TMDB v3 API key (required; TMDB_API_KEY is accepted too)
  - TMDB_BASE_URL, TMDB_IMAGE_BASE_URL, TMDB_IMAGE_SIZE, TMDB_LANGUAGE
  - TMDB_TIMEOUT: per-request timeout (default: 10s)
  - TMDB_RATE_LIMIT, TMDB_RATE_BURST: outbound limiter
  - POSTER_PLACEHOLDER_URL: fallback poster

Cache (CacheConfig):
  - CACHE_TYPE: badger or memory (default: badger)
  - CACHE_PATH: Badger directory (default: /data/cache)
  - CACHE_IN_MEMORY: run Badger in memory (default: false)
  - CACHE_TTL: response lifetime (default: 24h)
  - CACHE_GC_INTERVAL, CACHE_GC_DISCARD_RATIO, CACHE_CLEANUP_INTERVAL

Model (ModelConfig):
  - CATALOG_PATH: movie table (default: /data/model/movies.json)
  - SIMILARITY_PATH: similarity matrix (default: /data/model/similarity.npy)

Recommendation (RecommendConfig):
  - RECOMMEND_K: neighbours per lookup (default: 5)
  - RECOMMEND_POSTER_CONCURRENCY: parallel poster fetches (default: 5)

Server (ServerConfig):
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8501)
  - HTTP_TIMEOUT, SHUTDOWN_TIMEOUT
  - ENVIRONMENT: development, staging or production

Security (SecurityConfig):
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated list

Logging (LoggingConfig):
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Load fails fast when API_KEY is missing, when a value is outside its range
(validator struct tags), or when cross-field rules are violated, for example
a Badger cache with no path.
*/
package config
