// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// WarningKind classifies why a placeholder was returned.
type WarningKind string

const (
	WarningHTTPStatus    WarningKind = "http_status"
	WarningTransport     WarningKind = "transport"
	WarningDecode        WarningKind = "decode"
	WarningMissingPoster WarningKind = "missing_poster"
	WarningCircuitOpen   WarningKind = "circuit_open"
)

// Warning describes a poster that could not be resolved.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	MovieID int64       `json:"movie_id"`
	Message string      `json:"message"`
	Err     error       `json:"-"`
}

func (w *Warning) Error() string {
	return fmt.Sprintf("poster for movie %d: %s: %s", w.MovieID, w.Kind, w.Message)
}

func (w *Warning) Unwrap() error {
	return w.Err
}

// Resolution is the outcome of one poster lookup. URL is never empty.
type Resolution struct {
	URL         string   `json:"url"`
	Placeholder bool     `json:"placeholder"`
	Warning     *Warning `json:"warning,omitempty"`
}

// Fetcher resolves movie ids to poster image URLs.
type Fetcher struct {
	client      MovieClient
	imageBase   string
	imageSize   string
	placeholder string
}

// NewFetcher creates a fetcher over an existing MovieClient.
func NewFetcher(client MovieClient, cfg Config) *Fetcher {
	return &Fetcher{
		client:      client,
		imageBase:   strings.TrimRight(cfg.ImageBaseURL, "/"),
		imageSize:   strings.Trim(cfg.ImageSize, "/"),
		placeholder: cfg.PlaceholderURL,
	}
}

// New wires the production stack: circuit breaker, then a TMDB client whose
// http.Client has cfg.Timeout, then the response cache over store, then the
// outbound rate limiter, then base (http.DefaultTransport when nil).
func New(cfg Config, store cache.Store, cacheTTL time.Duration, base http.RoundTripper) (*Fetcher, *CircuitBreakerClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid poster config: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	transport := newLimitedTransport(base, limiter)
	if store != nil {
		transport = cache.NewTransport(transport, store, cacheTTL)
	}

	breaker := NewCircuitBreakerClient(NewTMDBClient(cfg, transport), DefaultBreakerSettings())
	return NewFetcher(breaker, cfg), breaker, nil
}

// FetchPoster returns a poster URL for movieID, or the placeholder URL if
// none can be resolved. It never fails.
func (f *Fetcher) FetchPoster(ctx context.Context, movieID int64) string {
	return f.Resolve(ctx, movieID).URL
}

// Resolve returns the poster URL along with the reason for any fallback.
func (f *Fetcher) Resolve(ctx context.Context, movieID int64) Resolution {
	start := time.Now()

	details, err := f.client.GetMovie(ctx, movieID)
	if err != nil {
		return f.fallback(ctx, start, movieID, classify(err), err)
	}
	if details == nil || details.PosterPath == nil || strings.TrimSpace(*details.PosterPath) == "" {
		return f.fallback(ctx, start, movieID, WarningMissingPoster, errors.New("no poster_path in response"))
	}

	metrics.RecordPoster("", time.Since(start))
	return Resolution{URL: f.imageURL(*details.PosterPath)}
}

// Placeholder returns the fallback URL.
func (f *Fetcher) Placeholder() string {
	return f.placeholder
}

// imageURL joins base, size and path with exactly one slash between each.
func (f *Fetcher) imageURL(posterPath string) string {
	return f.imageBase + "/" + f.imageSize + "/" + strings.TrimLeft(strings.TrimSpace(posterPath), "/")
}

func (f *Fetcher) fallback(ctx context.Context, start time.Time, movieID int64, kind WarningKind, err error) Resolution {
	w := &Warning{Kind: kind, MovieID: movieID, Message: err.Error(), Err: err}

	metrics.RecordPoster(string(kind), time.Since(start))
	logging.ForComponent(ctx, "poster").Warn().
		Int64("movie_id", movieID).
		Str("kind", string(kind)).
		Err(err).
		Msg("Poster unavailable, using placeholder")

	return Resolution{URL: f.placeholder, Placeholder: true, Warning: w}
}

func classify(err error) WarningKind {
	var se *StatusError
	switch {
	case isBreakerRejection(err):
		return WarningCircuitOpen
	case errors.As(err, &se):
		return WarningHTTPStatus
	case errors.Is(err, ErrDecode):
		return WarningDecode
	default:
		return WarningTransport
	}
}
