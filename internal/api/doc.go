// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api provides the HTTP surface of Reelmatch using the Chi router.

# Endpoints

	GET  /api/v1/titles                  every selectable title, catalog order
	GET  /api/v1/recommendations?title=  top picks with poster URLs
	GET  /api/v1/health/live             liveness probe
	GET  /api/v1/health/ready            readiness probe (503 when not ready)
	GET  /metrics                        Prometheus metrics
	GET  /assets/poster-placeholder.svg  fallback poster image

# Response Envelope

Every JSON endpoint answers with the same envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Errors set success to false and carry an error object with a machine
readable code (VALIDATION_ERROR, TOO_MANY_REQUESTS, NOT_FOUND, ...), a
message and the request id.

An unknown title is not an error. The recommendations endpoint answers
200 with found=false and a message for the user.

A poster_url is absolute when it points at TMDB. The fallback placeholder
is /assets/poster-placeholder.svg by default, a path relative to this
server's origin; clients on another origin must resolve it against the API
base URL, or the deployment sets POSTER_PLACEHOLDER_URL to an absolute URL.

# Middleware

Global: request id, real IP, access log, panic recovery, CORS and
Prometheus metrics. The /api/v1 group adds per-IP rate limiting through
go-chi/httprate, security headers and gzip compression.
*/
package api
