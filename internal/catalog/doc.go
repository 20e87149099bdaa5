// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package catalog loads and validates the precomputed recommendation model.
//
// The model is two static artifacts produced offline:
//
//   - a movie catalog table with at least the columns movie_id and title,
//     where row position i matches row/column i of the similarity matrix
//   - a square similarity matrix with one row and one column per catalog row
//
// Both are loaded once at process start by Load, which is the only startup
// gate: it returns a *StartupDataError for missing files, untabular catalogs,
// absent columns, malformed matrices, or a matrix whose size disagrees with
// the catalog. Callers are expected to stop the process on any such error.
//
// # Supported Formats
//
// Catalog (by extension):
//
//	.json     row objects   [{"movie_id": 19995, "title": "Avatar"}, ...]
//	          or columns    {"movie_id": [...], "title": [...]}
//	          (columns may also be {"0": v, "1": v} maps, as pandas writes them)
//	.csv      read with DuckDB read_csv_auto
//	.parquet  read with DuckDB read_parquet
//
// Similarity matrix:
//
//	.json  2-D array of numbers
//	.npy   NumPy array, dtype <f8 or <f4, 2-D
//
// # Invariants
//
// After a successful Load the Catalog and SimilarityMatrix are immutable and
// safe for concurrent readers. Title lookup is exact and case-sensitive;
// when titles repeat, the first row wins.
package catalog
