// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
)

// readDuckDBCatalog reads a tabular artifact through an in-memory DuckDB
// connection. reader is a DuckDB table function (read_csv_auto, read_parquet).
func readDuckDBCatalog(ctx context.Context, path, reader string) ([]Movie, error) {
	db, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("open duckdb: %w", err))
	}
	defer db.Close()

	// Table functions take the file as a literal, not a bind parameter.
	query := fmt.Sprintf("SELECT * FROM %s(%s)", reader, quoteLiteral(path))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("query: %w", err))
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("columns: %w", err))
	}

	idCol, titleCol := -1, -1
	for i, name := range columns {
		switch name {
		case columnMovieID:
			idCol = i
		case columnTitle:
			titleCol = i
		}
	}
	if idCol < 0 {
		return nil, newStartupError(ErrMissingColumn, path, fmt.Errorf("no %q column in %v", columnMovieID, columns))
	}
	if titleCol < 0 {
		return nil, newStartupError(ErrMissingColumn, path, fmt.Errorf("no %q column in %v", columnTitle, columns))
	}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	var movies []Movie
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("row %d: %w", len(movies), err))
		}
		id, hasID, err := toMovieID(normalizeDuckValue(values[idCol]))
		if err != nil {
			return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("row %d: %w", len(movies), err))
		}
		movies = append(movies, Movie{
			ID:    id,
			HasID: hasID,
			Title: toTitle(normalizeDuckValue(values[titleCol])),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("iterate: %w", err))
	}

	return movies, nil
}

// normalizeDuckValue widens the integer widths DuckDB may infer for an id column.
func normalizeDuckValue(v any) any {
	switch n := v.(type) {
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	default:
		return v
	}
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
