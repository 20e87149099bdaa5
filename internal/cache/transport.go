// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// HeaderCache is set on responses to report whether they came from the store.
const HeaderCache = "X-Reelmatch-Cache"

// DefaultTTL is how long a cached response is served.
const DefaultTTL = 24 * time.Hour

// maxCachedBody caps the size of a response that will be stored.
const maxCachedBody = 1 << 20

// cachedResponse is the stored form of an HTTP response.
type cachedResponse struct {
	StatusCode int                 `json:"status_code"`
	Header     map[string][]string `json:"header"`
	Body       []byte              `json:"body"`
	StoredAt   time.Time           `json:"stored_at"`
}

// Transport is an http.RoundTripper that serves GET responses from a Store.
// Only 200 responses are stored. A hit never reaches Base. Store failures
// are logged and the request falls through to Base.
type Transport struct {
	// Base performs requests on a miss. http.DefaultTransport when nil.
	Base http.RoundTripper

	// Store holds cached responses.
	Store Store

	// TTL is the lifetime of a stored response. DefaultTTL when zero.
	TTL time.Duration

	logger zerolog.Logger
}

// NewTransport wraps base with a response cache backed by store.
func NewTransport(base http.RoundTripper, store Store, ttl time.Duration) *Transport {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Transport{
		Base:   base,
		Store:  store,
		TTL:    ttl,
		logger: logging.WithComponent("cache"),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet || t.Store == nil {
		return t.base().RoundTrip(req)
	}

	ctx := req.Context()
	key := RequestKey(req)
	store := t.Store.Name()

	data, ok, err := t.Store.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RecordCacheError(store, "get")
		t.logger.Warn().Err(err).Str("store", store).Msg("Cache read failed, fetching from origin")
	case ok:
		resp, decodeErr := decodeResponse(data, req)
		if decodeErr == nil {
			metrics.RecordCacheLookup(store, true)
			return resp, nil
		}
		metrics.RecordCacheError(store, "decode")
		t.logger.Warn().Err(decodeErr).Str("store", store).Msg("Discarding undecodable cache entry")
		//nolint:errcheck // best effort removal of a corrupt entry
		t.Store.Delete(ctx, key)
	}
	metrics.RecordCacheLookup(store, false)

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	resp.Header.Set(HeaderCache, "MISS")

	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCachedBody+1))
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if len(body) > maxCachedBody {
		// Too large to store; hand back the full stream untouched.
		resp.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(body), resp.Body), Closer: resp.Body}
		return resp, nil
	}
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))

	t.store(req, key, resp, body)
	return resp, nil
}

func (t *Transport) store(req *http.Request, key string, resp *http.Response, body []byte) {
	store := t.Store.Name()

	header := resp.Header.Clone()
	header.Del(HeaderCache)

	data, err := json.Marshal(cachedResponse{
		StatusCode: resp.StatusCode,
		Header:     header,
		Body:       body,
		StoredAt:   time.Now().UTC(),
	})
	if err != nil {
		metrics.RecordCacheError(store, "encode")
		return
	}

	if err := t.Store.Set(req.Context(), key, data, t.TTL); err != nil {
		metrics.RecordCacheError(store, "set")
		t.logger.Warn().Err(err).Str("store", store).Msg("Cache write failed")
		return
	}
	metrics.RecordCacheStore(store)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func decodeResponse(data []byte, req *http.Request) (*http.Response, error) {
	var cr cachedResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return nil, err
	}

	header := http.Header(cr.Header)
	if header == nil {
		header = make(http.Header)
	}
	header.Set(HeaderCache, "HIT")

	return &http.Response{
		Status:        strconv.Itoa(cr.StatusCode) + " " + http.StatusText(cr.StatusCode),
		StatusCode:    cr.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(cr.Body)),
		ContentLength: int64(len(cr.Body)),
		Request:       req,
	}, nil
}

// RequestKey derives the cache key for req: a SHA-256 of the method and the
// URL with query parameters in sorted order. Credentials in the query string
// never appear in the key.
func RequestKey(req *http.Request) string {
	u := *req.URL
	u.RawQuery = u.Query().Encode()
	u.Fragment = ""

	sum := sha256.Sum256([]byte(req.Method + " " + u.String()))
	return "http:" + hex.EncodeToString(sum[:])
}

type readCloser struct {
	io.Reader
	io.Closer
}
