// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/poster"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every optional setting
//  2. Config File: Optional YAML file (CONFIG_PATH, config.yaml, /etc/reelmatch/config.yaml)
//  3. Environment Variables: Override any setting
//
// The only required value is the TMDB API key (API_KEY).
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Cache     CacheConfig     `koanf:"cache"`
	Model     ModelConfig     `koanf:"model"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// TMDBConfig holds the poster metadata API settings.
//
// Environment Variables:
//   - API_KEY: TMDB v3 API key (required)
//   - TMDB_BASE_URL: API origin (default: https://api.themoviedb.org)
//   - TMDB_IMAGE_BASE_URL: image CDN prefix (default: https://image.tmdb.org/t/p)
//   - TMDB_IMAGE_SIZE: poster size segment (default: w500)
//   - TMDB_LANGUAGE: language query parameter (default: en-US)
//   - TMDB_TIMEOUT: per-request timeout (default: 10s)
//   - TMDB_RATE_LIMIT / TMDB_RATE_BURST: outbound limiter (default: 40/s, burst 20)
//   - POSTER_PLACEHOLDER_URL: fallback image URL
type TMDBConfig struct {
	APIKey         string        `koanf:"api_key" validate:"required,notblank"`
	BaseURL        string        `koanf:"base_url" validate:"required,http_url"`
	ImageBaseURL   string        `koanf:"image_base_url" validate:"required,http_url"`
	ImageSize      string        `koanf:"image_size" validate:"required"`
	Language       string        `koanf:"language"`
	PlaceholderURL string        `koanf:"placeholder_url" validate:"required"`
	Timeout        time.Duration `koanf:"timeout" validate:"gt=0"`
	RateLimit      float64       `koanf:"rate_limit" validate:"gte=0"`
	RateBurst      int           `koanf:"rate_burst" validate:"gte=0"`
}

// CacheConfig holds the poster response cache settings.
type CacheConfig struct {
	// Type is the store backend: badger (persistent) or memory.
	Type string `koanf:"type" validate:"oneof=badger memory"`

	// Path is the Badger directory. Ignored for memory and in-memory Badger.
	Path string `koanf:"path"`

	// InMemory runs Badger without touching disk.
	InMemory bool `koanf:"in_memory"`

	// TTL is how long a TMDB response is served from cache.
	TTL time.Duration `koanf:"ttl" validate:"gt=0"`

	// GCInterval is how often Badger value-log GC runs. Zero disables it.
	GCInterval time.Duration `koanf:"gc_interval" validate:"gte=0"`

	// GCDiscardRatio is passed to Badger's RunValueLogGC.
	GCDiscardRatio float64 `koanf:"gc_discard_ratio" validate:"gt=0,lt=1"`

	// CleanupInterval is the expired-entry sweep period of the memory store.
	CleanupInterval time.Duration `koanf:"cleanup_interval" validate:"gte=0"`
}

// ModelConfig points at the precomputed model artifacts.
type ModelConfig struct {
	// CatalogPath is the movie table (.json, .csv or .parquet).
	CatalogPath string `koanf:"catalog_path" validate:"required"`

	// SimilarityPath is the square similarity matrix (.json or .npy).
	SimilarityPath string `koanf:"similarity_path" validate:"required"`
}

// RecommendConfig tunes the lookup.
type RecommendConfig struct {
	// K is the number of neighbours returned.
	K int `koanf:"k" validate:"min=1,max=50"`

	// PosterConcurrency bounds parallel poster fetches per lookup.
	PosterConcurrency int `koanf:"poster_concurrency" validate:"min=1,max=50"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	Environment     string        `koanf:"environment" validate:"oneof=development staging production"`
}

// SecurityConfig holds request protection settings for the public API.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gte=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is json (production) or console (development).
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller adds file:line to each entry.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the
// environment. See LoadWithKoanf for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// PosterConfig converts the TMDB section for the poster package.
func (c *Config) PosterConfig() poster.Config {
	return poster.Config{
		APIKey:         c.TMDB.APIKey,
		BaseURL:        c.TMDB.BaseURL,
		ImageBaseURL:   c.TMDB.ImageBaseURL,
		ImageSize:      c.TMDB.ImageSize,
		Language:       c.TMDB.Language,
		PlaceholderURL: c.TMDB.PlaceholderURL,
		Timeout:        c.TMDB.Timeout,
		RateLimit:      c.TMDB.RateLimit,
		RateBurst:      c.TMDB.RateBurst,
	}
}

// CacheStoreConfig converts the cache section for cache.NewStore.
func (c *Config) CacheStoreConfig() cache.Config {
	return cache.Config{
		Type:            cache.StoreType(c.Cache.Type),
		Path:            c.Cache.Path,
		InMemory:        c.Cache.InMemory,
		CleanupInterval: c.Cache.CleanupInterval,
	}
}

// ModelPaths converts the model section for catalog.Load.
func (c *Config) ModelPaths() catalog.Paths {
	return catalog.Paths{
		Catalog:    c.Model.CatalogPath,
		Similarity: c.Model.SimilarityPath,
	}
}

// LogConfig converts the logging section for logging.Init.
func (c *Config) LogConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}

// String summarises the configuration without secrets.
func (c *Config) String() string {
	return fmt.Sprintf("server=%s env=%s cache=%s model=%s,%s k=%d",
		c.Server.Addr(), c.Server.Environment, c.Cache.Type,
		c.Model.CatalogPath, c.Model.SimilarityPath, c.Recommend.K)
}
