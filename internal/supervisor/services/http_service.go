// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// DefaultShutdownTimeout bounds connection draining when none is configured.
const DefaultShutdownTimeout = 10 * time.Second

// HTTPServer is the part of *http.Server the service drives.
type HTTPServer interface {
	Serve(l net.Listener) error
	Shutdown(ctx context.Context) error
}

// HTTPServerService binds addr and serves the Reelmatch API until its
// context ends, then drains in-flight requests.
//
// The listener is opened inside Serve, so a port that is still held by a
// previous process shows up as a service failure and suture retries it with
// backoff.
type HTTPServerService struct {
	server  HTTPServer
	addr    string
	drain   time.Duration
	listen  func(network, addr string) (net.Listener, error)
	boundCh chan net.Addr
}

// NewHTTPServerService serves server on addr. A non-positive drain timeout
// uses DefaultShutdownTimeout.
func NewHTTPServerService(server HTTPServer, addr string, drain time.Duration) *HTTPServerService {
	if drain <= 0 {
		drain = DefaultShutdownTimeout
	}
	return &HTTPServerService{
		server:  server,
		addr:    addr,
		drain:   drain,
		listen:  net.Listen,
		boundCh: make(chan net.Addr, 1),
	}
}

// Bound yields the listening address once per successful bind. Useful when
// addr has port 0.
func (h *HTTPServerService) Bound() <-chan net.Addr {
	return h.boundCh
}

// Serve implements suture.Service.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	log := logging.WithComponent(h.String())

	ln, err := h.listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", h.addr, err)
	}
	log.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
	select {
	case h.boundCh <- ln.Addr():
	default:
	}

	done := make(chan error, 1)
	go func() { done <- h.server.Serve(ln) }()

	select {
	case err := <-done:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			// Closed by someone other than us; let suture decide.
			return errors.New("http server stopped unexpectedly")
		}
		return fmt.Errorf("http server failed: %w", err)

	case <-ctx.Done():
	}

	log.Info().Dur("timeout", h.drain).Msg("Draining HTTP connections")

	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.drain)
	defer cancel()
	if err := h.server.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	if err := <-done; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed during shutdown: %w", err)
	}

	log.Info().Msg("HTTP server stopped")
	return ctx.Err()
}

func (h *HTTPServerService) String() string {
	return "http-server"
}
