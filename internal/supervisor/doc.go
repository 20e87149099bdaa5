// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor provides process supervision for Reelmatch using suture v4.

# Overview

Long-running services are organized into two layers:

	"reelmatch"
	├── LayerCache ("cache-layer")
	│   └── CacheGCService (Badger store only)
	└── LayerAPI ("api-layer")
	    └── HTTPServerService

A crashed service is restarted with exponential backoff. Failures are
counted per layer, so a GC loop that keeps failing never restarts the HTTP
server.

# Logging

Supervisor events (service panics, restarts, backoff) are written through
sutureslog. main.go passes logging.NewSlogLogger() so these events end up
in the same zerolog stream as the rest of the application.

# Usage

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	_, _ = tree.Add(supervisor.LayerCache, services.NewCacheGCService(store, 10*time.Minute, 0.5))
	_, _ = tree.Add(supervisor.LayerAPI, services.NewHTTPServerService(server, addr, 15*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
