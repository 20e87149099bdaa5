// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package services provides suture.Service wrappers for Reelmatch components.

Each wrapper implements

	Serve(ctx context.Context) error

and fmt.Stringer so supervisor events name the service.

HTTPServerService opens its own listener, so a bind failure is a service
failure that suture retries. On cancellation it drains connections with
Shutdown.

CacheGCService runs Badger value-log GC on the poster cache at a fixed
interval. A GC error stops the loop and the supervisor restarts it.
*/
package services
