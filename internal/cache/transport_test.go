// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTransport answers every request with a fixed response and counts calls.
type countingTransport struct {
	calls  atomic.Int32
	status int
	body   string
	err    error
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &http.Response{
		StatusCode: c.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(c.body)),
		Request:    req,
	}, nil
}

// failingStore errors on every operation.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk full")
}
func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("disk full")
}
func (failingStore) Delete(context.Context, string) error { return nil }
func (failingStore) Clear(context.Context) error          { return nil }
func (failingStore) Name() string                         { return "failing" }
func (failingStore) Close() error                         { return nil }

func get(t *testing.T, client *http.Client, url string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, http.NoBody)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestTransport_SecondRequestIsServedFromStore(t *testing.T) {
	t.Parallel()

	for _, newStore := range []func(t *testing.T) Store{
		func(t *testing.T) Store { return newTestBadgerStore(t) },
		func(t *testing.T) Store { s := NewMemoryStore(0); t.Cleanup(func() { s.Close() }); return s },
	} {
		store := newStore(t)
		t.Run(store.Name(), func(t *testing.T) {
			base := &countingTransport{status: http.StatusOK, body: `{"poster_path":"/abc.jpg"}`}
			client := &http.Client{Transport: NewTransport(base, store, time.Hour)}

			url := "https://api.example.test/3/movie/19995?api_key=k&language=en-US"
			resp1, body1 := get(t, client, url)
			resp2, body2 := get(t, client, url)

			assert.Equal(t, int32(1), base.calls.Load())
			assert.Equal(t, body1, body2)
			assert.Equal(t, "MISS", resp1.Header.Get(HeaderCache))
			assert.Equal(t, "HIT", resp2.Header.Get(HeaderCache))
			assert.Equal(t, http.StatusOK, resp2.StatusCode)
			assert.Equal(t, "application/json", resp2.Header.Get("Content-Type"))
		})
	}
}

func TestTransport_QueryOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	base := &countingTransport{status: http.StatusOK, body: `{}`}
	client := &http.Client{Transport: NewTransport(base, newTestBadgerStore(t), time.Hour)}

	get(t, client, "https://api.example.test/3/movie/1?api_key=k&language=en-US")
	get(t, client, "https://api.example.test/3/movie/1?language=en-US&api_key=k")
	assert.Equal(t, int32(1), base.calls.Load())

	get(t, client, "https://api.example.test/3/movie/2?api_key=k&language=en-US")
	assert.Equal(t, int32(2), base.calls.Load())
}

func TestTransport_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"unauthorized", http.StatusUnauthorized},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			base := &countingTransport{status: tt.status, body: `{"status_code":34}`}
			client := &http.Client{Transport: NewTransport(base, NewMemoryStore(0), time.Hour)}

			resp, _ := get(t, client, "https://api.example.test/3/movie/1")
			assert.Equal(t, tt.status, resp.StatusCode)
			get(t, client, "https://api.example.test/3/movie/1")
			assert.Equal(t, int32(2), base.calls.Load())
		})
	}
}

func TestTransport_TransportErrorPropagates(t *testing.T) {
	t.Parallel()

	base := &countingTransport{err: errors.New("connection refused")}
	client := &http.Client{Transport: NewTransport(base, NewMemoryStore(0), time.Hour)}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "https://api.example.test/x", http.NoBody)
	_, err := client.Do(req)
	assert.Error(t, err)
}

func TestTransport_ExpiredEntryIsRefetched(t *testing.T) {
	t.Parallel()

	base := &countingTransport{status: http.StatusOK, body: `{}`}
	client := &http.Client{Transport: NewTransport(base, NewMemoryStore(0), 50*time.Millisecond)}

	get(t, client, "https://api.example.test/3/movie/1")
	time.Sleep(80 * time.Millisecond)
	get(t, client, "https://api.example.test/3/movie/1")

	assert.Equal(t, int32(2), base.calls.Load())
}

func TestTransport_StoreFailureFallsThrough(t *testing.T) {
	t.Parallel()

	base := &countingTransport{status: http.StatusOK, body: `{"ok":true}`}
	client := &http.Client{Transport: NewTransport(base, failingStore{}, time.Hour)}

	_, body := get(t, client, "https://api.example.test/3/movie/1")
	assert.Equal(t, `{"ok":true}`, body)
}

func TestTransport_CorruptEntryIsReplaced(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(0)
	defer store.Close()
	url := "https://api.example.test/3/movie/1"
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, url, http.NoBody)
	require.NoError(t, store.Set(context.Background(), RequestKey(req), []byte("not json"), time.Hour))

	base := &countingTransport{status: http.StatusOK, body: `{}`}
	client := &http.Client{Transport: NewTransport(base, store, time.Hour)}

	get(t, client, url)
	get(t, client, url)
	assert.Equal(t, int32(1), base.calls.Load())
}

func TestTransport_NonGETPassesThrough(t *testing.T) {
	t.Parallel()

	base := &countingTransport{status: http.StatusOK, body: `{}`}
	client := &http.Client{Transport: NewTransport(base, NewMemoryStore(0), time.Hour)}

	for i := 0; i < 2; i++ {
		req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, "https://api.example.test/x", bytes.NewReader(nil))
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.Equal(t, int32(2), base.calls.Load())
}

func TestTransport_ConcurrentSameKey(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"poster_path":"/p.jpg"}`))
	}))
	defer server.Close()

	client := &http.Client{Transport: NewTransport(server.Client().Transport, newTestBadgerStore(t), time.Hour)}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL+"/3/movie/1", http.NoBody)
			resp, err := client.Do(req)
			if err != nil {
				t.Errorf("Do() error = %v", err)
				return
			}
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if string(body) != `{"poster_path":"/p.jpg"}` {
				t.Errorf("body = %s", body)
			}
		}()
	}
	wg.Wait()

	// Concurrent misses may each reach the origin; afterwards the entry is stored.
	before := hits.Load()
	get(t, client, server.URL+"/3/movie/1")
	assert.Equal(t, before, hits.Load())
}

func TestRequestKey(t *testing.T) {
	t.Parallel()

	mk := func(method, url string) string {
		req, err := http.NewRequestWithContext(context.Background(), method, url, http.NoBody)
		require.NoError(t, err)
		return RequestKey(req)
	}

	a := mk(http.MethodGet, "https://h/p?b=2&a=1")
	assert.Equal(t, a, mk(http.MethodGet, "https://h/p?a=1&b=2"))
	assert.Equal(t, a, mk(http.MethodGet, "https://h/p?a=1&b=2#frag"))
	assert.NotEqual(t, a, mk(http.MethodHead, "https://h/p?a=1&b=2"))
	assert.NotEqual(t, a, mk(http.MethodGet, "https://h/p?a=1&b=3"))
	assert.True(t, strings.HasPrefix(a, "http:"))
	assert.NotContains(t, mk(http.MethodGet, "https://h/p?api_key=secret"), "secret")
}
