// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Defaults for the TMDB v3 API.
const (
	DefaultBaseURL        = "https://api.themoviedb.org"
	DefaultImageBaseURL   = "https://image.tmdb.org/t/p"
	DefaultImageSize      = "w500"
	DefaultLanguage       = "en-US"
	DefaultTimeout        = 10 * time.Second
	DefaultPlaceholderURL = "/assets/poster-placeholder.svg"

	// TMDB allows roughly 50 requests per second per client.
	DefaultRateLimit = 40.0
	DefaultRateBurst = 20
)

// Config configures the poster fetcher.
type Config struct {
	// APIKey is the TMDB v3 API key. Required.
	APIKey string

	// BaseURL is the metadata API origin, without the /3 version prefix.
	BaseURL string

	// ImageBaseURL is the image CDN prefix that sizes and paths are appended to.
	ImageBaseURL string

	// ImageSize is the TMDB poster size segment (w92 ... w780, original).
	ImageSize string

	// Language is sent as the language query parameter.
	Language string

	// PlaceholderURL is returned whenever no poster can be resolved. The
	// default is a path on this server, relative to its origin; set
	// POSTER_PLACEHOLDER_URL to an absolute URL for cross-origin clients.
	PlaceholderURL string

	// Timeout bounds one poster request end to end.
	Timeout time.Duration

	// RateLimit is the sustained outbound request rate in requests per second.
	// Zero disables limiting.
	RateLimit float64

	// RateBurst is the limiter bucket size.
	RateBurst int
}

// DefaultConfig returns the production defaults. APIKey is left empty.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		ImageBaseURL:   DefaultImageBaseURL,
		ImageSize:      DefaultImageSize,
		Language:       DefaultLanguage,
		PlaceholderURL: DefaultPlaceholderURL,
		Timeout:        DefaultTimeout,
		RateLimit:      DefaultRateLimit,
		RateBurst:      DefaultRateBurst,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("tmdb api key is required")
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid tmdb base url %q: %w", c.BaseURL, err)
	}
	if _, err := url.ParseRequestURI(c.ImageBaseURL); err != nil {
		return fmt.Errorf("invalid tmdb image base url %q: %w", c.ImageBaseURL, err)
	}
	if c.ImageSize == "" {
		return errors.New("tmdb image size is required")
	}
	if c.PlaceholderURL == "" {
		return errors.New("placeholder url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative, got %v", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("rate burst must be positive, got %d", c.RateBurst)
	}
	return nil
}
