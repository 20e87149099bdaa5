// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/lookup"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			APIKey:         "", // Required - no default
			BaseURL:        poster.DefaultBaseURL,
			ImageBaseURL:   poster.DefaultImageBaseURL,
			ImageSize:      poster.DefaultImageSize,
			Language:       poster.DefaultLanguage,
			PlaceholderURL: poster.DefaultPlaceholderURL,
			Timeout:        poster.DefaultTimeout,
			RateLimit:      poster.DefaultRateLimit,
			RateBurst:      poster.DefaultRateBurst,
		},
		Cache: CacheConfig{
			Type:            string(cache.StoreBadger),
			Path:            "/data/cache",
			InMemory:        false,
			TTL:             cache.DefaultTTL,
			GCInterval:      10 * time.Minute,
			GCDiscardRatio:  0.5,
			CleanupInterval: time.Minute,
		},
		Model: ModelConfig{
			CatalogPath:    "/data/model/movies.json",
			SimilarityPath: "/data/model/similarity.npy",
		},
		Recommend: RecommendConfig{
			K:                 recommend.DefaultK,
			PosterConcurrency: lookup.DefaultConcurrency,
		},
		Server: ServerConfig{
			Port:            8501,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath, err := findConfigFile(os.Getenv(ConfigPathEnvVar))
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// API_KEY -> tmdb.api_key, CACHE_TTL -> cache.ttl
	if err := k.Load(env.ProviderWithValue("", ".", envValueFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the config file to load, or "" if none exists.
// An explicit CONFIG_PATH that does not exist is an error.
func findConfigFile(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("%s=%s: %w", ConfigPathEnvVar, override, err)
		}
		return override, nil
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", nil
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, YAML lists arrive as slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// TMDB
	"api_key":                "tmdb.api_key",
	"tmdb_api_key":           "tmdb.api_key",
	"tmdb_base_url":          "tmdb.base_url",
	"tmdb_image_base_url":    "tmdb.image_base_url",
	"tmdb_image_size":        "tmdb.image_size",
	"tmdb_language":          "tmdb.language",
	"tmdb_timeout":           "tmdb.timeout",
	"tmdb_rate_limit":        "tmdb.rate_limit",
	"tmdb_rate_burst":        "tmdb.rate_burst",
	"poster_placeholder_url": "tmdb.placeholder_url",

	// Cache
	"cache_type":             "cache.type",
	"cache_path":             "cache.path",
	"cache_in_memory":        "cache.in_memory",
	"cache_ttl":              "cache.ttl",
	"cache_gc_interval":      "cache.gc_interval",
	"cache_gc_discard_ratio": "cache.gc_discard_ratio",
	"cache_cleanup_interval": "cache.cleanup_interval",

	// Model artifacts
	"catalog_path":    "model.catalog_path",
	"similarity_path": "model.similarity_path",

	// Recommendation
	"recommend_k":                  "recommend.k",
	"recommend_poster_concurrency": "recommend.poster_concurrency",

	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - API_KEY -> tmdb.api_key
//   - CACHE_TTL -> cache.ttl
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	// Unmapped keys return "" so unrelated variables never reach the config
	return envMappings[strings.ToLower(key)]
}

// envValueFunc is envTransformFunc for env.ProviderWithValue. Blank values
// are skipped so API_KEY=${API_KEY} with nothing set on the host keeps the
// file's key. When both are set, API_KEY wins over TMDB_API_KEY.
func envValueFunc(key, value string) (string, interface{}) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	if strings.EqualFold(key, "TMDB_API_KEY") && strings.TrimSpace(os.Getenv("API_KEY")) != "" {
		return "", nil
	}
	return envTransformFunc(key), value
}
