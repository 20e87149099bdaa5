// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package lookup composes the recommender and the poster fetcher into the
// result shown to a user: ranked titles, each paired with a poster URL.
//
// Poster fetches for one lookup run concurrently, bounded by Config.Concurrency.
// Results are written by rank index so Picks[i] always pairs the i-th title
// with its own poster. A title missing from the catalog is not an error; the
// Result has Found=false and carries NotFoundMessage.
package lookup
