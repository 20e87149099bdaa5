// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package poster resolves TMDB movie ids to poster image URLs.
//
// Every lookup returns a usable URL. When TMDB cannot supply a poster the
// configured placeholder is returned together with a Warning whose Kind says
// why: http_status, transport (including timeouts), decode, missing_poster,
// or circuit_open.
//
// The request path for one lookup is:
//
//	Fetcher.Resolve
//	  -> CircuitBreakerClient (sony/gobreaker)
//	  -> TMDBClient, http.Client with a 10s timeout
//	  -> cache.Transport (24h response cache)
//	  -> rate limiter (golang.org/x/time/rate)
//	  -> network
//
// Requests are GET {base}/3/movie/{id}?api_key={key}&language=en-US and the
// poster URL is {image base}/{size}/{poster_path}, for example
// https://image.tmdb.org/t/p/w500/kyeqWdyUXW608qlYkRqosgbbJyK.jpg.
package poster
