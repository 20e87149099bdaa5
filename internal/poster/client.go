// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// ErrDecode marks a response body that is not a TMDB movie object.
var ErrDecode = errors.New("undecodable tmdb response")

// StatusError is returned for a non-2xx TMDB response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("tmdb returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("tmdb returned status %d: %s", e.StatusCode, e.Body)
}

// MovieDetails is the subset of /3/movie/{id} the fetcher reads.
type MovieDetails struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	PosterPath *string `json:"poster_path"`
}

// MovieClient fetches movie metadata.
type MovieClient interface {
	GetMovie(ctx context.Context, movieID int64) (*MovieDetails, error)
}

// TMDBClient calls the TMDB v3 movie endpoint.
type TMDBClient struct {
	baseURL  string
	apiKey   string
	language string
	client   *http.Client
}

// NewTMDBClient builds a client whose transport stack is, outermost first:
// http.Client timeout, then transport (normally the response cache), then
// whatever transport wraps. Pass nil to use http.DefaultTransport.
func NewTMDBClient(cfg Config, transport http.RoundTripper) *TMDBClient {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &TMDBClient{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

// movieURL builds GET {base}/3/movie/{id}?api_key=...&language=...
func (c *TMDBClient) movieURL(movieID int64) string {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	return c.baseURL + "/3/movie/" + strconv.FormatInt(movieID, 10) + "?" + params.Encode()
}

// GetMovie fetches metadata for one movie.
func (c *TMDBClient) GetMovie(ctx context.Context, movieID int64) (*MovieDetails, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.movieURL(movieID), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", redactURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: readBodyForError(resp.Body)}
	}

	var details MovieDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return &details, nil
}

// readBodyForError reads a bounded prefix of an error body for diagnostics.
func readBodyForError(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, 512))
	return strings.TrimSpace(string(data))
}

// redactURLError strips the request URL, which carries the API key, from
// client errors before they are logged.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

// limitedTransport waits on a token bucket before each request reaches the
// network. It sits below the response cache so hits are never throttled.
type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

// newLimitedTransport wraps base with limiter. A nil limiter returns base.
func newLimitedTransport(base http.RoundTripper, limiter *rate.Limiter) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if limiter == nil {
		return base
	}
	return &limitedTransport{base: base, limiter: limiter}
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return t.base.RoundTrip(req)
}
