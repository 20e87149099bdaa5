// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend implements nearest-neighbour lookup over a precomputed
// similarity matrix.
//
// # Algorithm
//
// For a queried title the engine:
//
//  1. finds the first catalog row with exactly that title
//  2. pairs every score in that row with its column index
//  3. orders the pairs by descending score, ties by ascending index
//  4. drops the queried row itself and keeps the first K
//  5. skips neighbours whose movie_id is missing, with a warning
//
// Step 4 removes the queried row by index, not by dropping the first ranked
// entry. The two differ only when another row scores at least as high as
// the diagonal and sits at a lower index: that row is then kept as a
// neighbour here, where dropping position 0 would discard it and return
// the queried title itself.
//
// Skipped neighbours are not replaced, so a result may hold fewer than K
// entries. An unknown title is not an error: it yields an empty result with
// Found set to false.
//
// # Usage
//
//	engine, err := recommend.NewEngine(model, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	names, ids := engine.Recommend("Avatar")
//
//	// Or, with scores and warnings:
//	res := engine.Similar(ctx, "Avatar")
//
// # Thread Safety
//
// The engine reads an immutable model and keeps only atomic counters, so
// lookups may run concurrently without locking.
package recommend
