// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/suture/v4"
)

// fakeServer blocks in Serve until Shutdown, or fails at once with serveErr.
type fakeServer struct {
	serveErr    error
	shutdownErr error

	serveCalls    atomic.Int32
	shutdownCalls atomic.Int32
	stopOnce      sync.Once
	stop          chan struct{}
}

func newFakeServer() *fakeServer {
	return &fakeServer{stop: make(chan struct{})}
}

func (f *fakeServer) Serve(ln net.Listener) error {
	f.serveCalls.Add(1)
	defer ln.Close()
	if f.serveErr != nil {
		return f.serveErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdownCalls.Add(1)
	f.stopOnce.Do(func() { close(f.stop) })
	return f.shutdownErr
}

var _ suture.Service = (*HTTPServerService)(nil)

func TestNewHTTPServerService_DrainDefault(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		svc := NewHTTPServerService(newFakeServer(), "127.0.0.1:0", d)
		assert.Equal(t, DefaultShutdownTimeout, svc.drain)
	}
	assert.Equal(t, 3*time.Second, NewHTTPServerService(newFakeServer(), "127.0.0.1:0", 3*time.Second).drain)
	assert.Equal(t, "http-server", NewHTTPServerService(newFakeServer(), "", 0).String())
}

func TestHTTPServerService_DrainsOnCancel(t *testing.T) {
	server := newFakeServer()
	svc := NewHTTPServerService(server, "127.0.0.1:0", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	select {
	case addr := <-svc.Bound():
		assert.NotEqual(t, "127.0.0.1:0", addr.String())
	case <-time.After(time.Second):
		t.Fatal("server did not bind")
	}

	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	assert.Equal(t, int32(1), server.serveCalls.Load())
	assert.Equal(t, int32(1), server.shutdownCalls.Load())
}

func TestHTTPServerService_Failures(t *testing.T) {
	t.Run("port in use", func(t *testing.T) {
		held, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer held.Close()

		server := newFakeServer()
		err = NewHTTPServerService(server, held.Addr().String(), time.Second).Serve(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listen on")
		assert.Zero(t, server.serveCalls.Load())
	})

	t.Run("serve error", func(t *testing.T) {
		server := newFakeServer()
		server.serveErr = io.ErrUnexpectedEOF

		err := NewHTTPServerService(server, "127.0.0.1:0", time.Second).Serve(context.Background())
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("closed behind our back", func(t *testing.T) {
		server := newFakeServer()
		server.serveErr = http.ErrServerClosed

		err := NewHTTPServerService(server, "127.0.0.1:0", time.Second).Serve(context.Background())
		assert.ErrorContains(t, err, "stopped unexpectedly")
	})

	t.Run("shutdown error", func(t *testing.T) {
		drainErr := errors.New("drain deadline exceeded")
		server := newFakeServer()
		server.shutdownErr = drainErr
		svc := NewHTTPServerService(server, "127.0.0.1:0", time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()
		<-svc.Bound()
		cancel()

		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, drainErr)
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return")
		}
	})
}

func TestHTTPServerService_UnderSupervisor(t *testing.T) {
	server := newFakeServer()
	svc := NewHTTPServerService(server, "127.0.0.1:0", time.Second)

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	select {
	case <-svc.Bound():
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}

	cancel()
	<-errCh
	assert.GreaterOrEqual(t, server.shutdownCalls.Load(), int32(1))
}

func TestHTTPServerService_RealServer(t *testing.T) {
	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
		ReadHeaderTimeout: time.Second,
	}
	svc := NewHTTPServerService(server, "127.0.0.1:0", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	addr := <-svc.Bound()
	resp, err := http.Get("http://" + addr.String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}
