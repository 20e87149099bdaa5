// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/reelmatch/internal/validation"
)

// ErrMissingAPIKey is returned when no TMDB API key is configured.
var ErrMissingAPIKey = errors.New("API_KEY is required: set it to a TMDB v3 API key")

// Validate checks that required configuration is present and valid.
// Struct tags cover ranges and enums; the checks below cover rules that
// span fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		return ErrMissingAPIKey
	}

	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateTMDB(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	return c.validateSecurity()
}

func (c *Config) validateTMDB() error {
	// The client appends /3/movie/{id}, so the API URL must be an origin.
	if err := checkTMDBURL(c.TMDB.BaseURL, "TMDB_BASE_URL", false); err != nil {
		return err
	}
	// Image URLs are {image base}/{size}/{path}; the base keeps its /t/p path.
	if err := checkTMDBURL(c.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL", true); err != nil {
		return err
	}
	if c.TMDB.RateLimit > 0 && c.TMDB.RateBurst < 1 {
		return fmt.Errorf("TMDB_RATE_BURST must be at least 1 when TMDB_RATE_LIMIT is set, got %d", c.TMDB.RateBurst)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Type == "badger" && !c.Cache.InMemory && c.Cache.Path == "" {
		return fmt.Errorf("CACHE_PATH is required when CACHE_TYPE=badger and CACHE_IN_MEMORY=false")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	if c.Server.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS=* is not allowed when ENVIRONMENT=production")
			}
		}
	}
	return nil
}

// checkTMDBURL requires an http(s) URL with a host and no query. The API key
// travels as a query parameter, so a configured query would be mixed into it.
func checkTMDBURL(raw, env string, allowPath bool) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", env, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", env, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host", env)
	}
	if !allowPath && strings.Trim(u.Path, "/") != "" {
		return fmt.Errorf("%s must be an origin without a path, got %q", env, u.Path)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("%s must not carry a query or fragment", env)
	}
	return nil
}
