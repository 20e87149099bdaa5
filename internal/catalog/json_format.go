// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

const (
	columnMovieID = "movie_id"
	columnTitle   = "title"
)

func readJSONCatalog(path string) ([]Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("read: %w", err))
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, newStartupError(ErrBadCatalog, path, errors.New("empty file"))
	}

	switch trimmed[0] {
	case '[':
		return decodeRecords(path, trimmed)
	case '{':
		return decodeColumns(path, trimmed)
	default:
		return nil, newStartupError(ErrBadCatalog, path, errors.New("expected a JSON array of rows or an object of columns"))
	}
}

// decodeRecords handles [{"movie_id": 1, "title": "A"}, ...].
func decodeRecords(path string, data []byte) ([]Movie, error) {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("decode rows: %w", err))
	}

	movies := make([]Movie, 0, len(records))
	for i, rec := range records {
		if rec == nil {
			return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("row %d is not an object", i))
		}
		rawID, ok := rec[columnMovieID]
		if !ok {
			return nil, newStartupError(ErrMissingColumn, path, fmt.Errorf("row %d has no %q", i, columnMovieID))
		}
		rawTitle, ok := rec[columnTitle]
		if !ok {
			return nil, newStartupError(ErrMissingColumn, path, fmt.Errorf("row %d has no %q", i, columnTitle))
		}

		m, err := decodeMovie(rawID, rawTitle)
		if err != nil {
			return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("row %d: %w", i, err))
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// decodeColumns handles {"movie_id": [...], "title": [...]} and the pandas
// "columns" orient where each column is {"0": v, "1": v, ...}.
func decodeColumns(path string, data []byte) ([]Movie, error) {
	var cols map[string]json.RawMessage
	if err := json.Unmarshal(data, &cols); err != nil {
		return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("decode columns: %w", err))
	}

	rawIDs, ok := cols[columnMovieID]
	if !ok {
		return nil, newStartupError(ErrMissingColumn, path, fmt.Errorf("no %q column", columnMovieID))
	}
	rawTitles, ok := cols[columnTitle]
	if !ok {
		return nil, newStartupError(ErrMissingColumn, path, fmt.Errorf("no %q column", columnTitle))
	}

	ids, err := decodeColumn(rawIDs)
	if err != nil {
		return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("column %q: %w", columnMovieID, err))
	}
	titles, err := decodeColumn(rawTitles)
	if err != nil {
		return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("column %q: %w", columnTitle, err))
	}
	if len(ids) != len(titles) {
		return nil, newStartupError(ErrBadCatalog, path,
			fmt.Errorf("column lengths differ: %d ids, %d titles", len(ids), len(titles)))
	}

	movies := make([]Movie, 0, len(ids))
	for i := range ids {
		m, err := decodeMovie(ids[i], titles[i])
		if err != nil {
			return nil, newStartupError(ErrBadCatalog, path, fmt.Errorf("row %d: %w", i, err))
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// decodeColumn returns the cells of a column in row order.
func decodeColumn(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty column")
	}

	switch trimmed[0] {
	case '[':
		var cells []json.RawMessage
		if err := json.Unmarshal(trimmed, &cells); err != nil {
			return nil, err
		}
		return cells, nil
	case '{':
		var byRow map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &byRow); err != nil {
			return nil, err
		}
		keys := make([]int, 0, len(byRow))
		for k := range byRow {
			n, err := strconv.Atoi(k)
			if err != nil {
				return nil, fmt.Errorf("row key %q is not an integer", k)
			}
			keys = append(keys, n)
		}
		sort.Ints(keys)
		cells := make([]json.RawMessage, len(keys))
		for i, k := range keys {
			if k != i {
				return nil, fmt.Errorf("row keys are not contiguous from 0 (found %d at position %d)", k, i)
			}
			cells[i] = byRow[strconv.Itoa(k)]
		}
		return cells, nil
	default:
		return nil, errors.New("column must be an array or an object keyed by row")
	}
}

func decodeMovie(rawID, rawTitle json.RawMessage) (Movie, error) {
	var m Movie

	var id any
	if err := json.Unmarshal(rawID, &id); err != nil {
		return m, fmt.Errorf("movie_id: %w", err)
	}
	movieID, hasID, err := toMovieID(id)
	if err != nil {
		return m, err
	}
	m.ID, m.HasID = movieID, hasID

	var title any
	if err := json.Unmarshal(rawTitle, &title); err != nil {
		return m, fmt.Errorf("title: %w", err)
	}
	m.Title = toTitle(title)

	return m, nil
}

// toMovieID accepts the shapes a dataframe export produces: integers,
// integral floats, numeric strings, and null for a missing value.
func toMovieID(v any) (int64, bool, error) {
	switch id := v.(type) {
	case nil:
		return 0, false, nil
	case int64:
		return id, true, nil
	case int32:
		return int64(id), true, nil
	case int:
		return int64(id), true, nil
	case float64:
		if math.IsNaN(id) {
			return 0, false, nil
		}
		if id != math.Trunc(id) || math.IsInf(id, 0) {
			return 0, false, fmt.Errorf("movie_id %v is not an integer", id)
		}
		return int64(id), true, nil
	case float32:
		return toMovieID(float64(id))
	case string:
		if id == "" {
			return 0, false, nil
		}
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("movie_id %q is not an integer", id)
		}
		return n, true, nil
	default:
		return 0, false, fmt.Errorf("movie_id has unsupported type %T", v)
	}
}

func toTitle(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func readJSONMatrix(path string) (*SimilarityMatrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newStartupError(ErrBadMatrix, path, fmt.Errorf("read: %w", err))
	}

	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, newStartupError(ErrBadMatrix, path, fmt.Errorf("decode: %w", err))
	}

	m, err := NewSimilarityMatrix(rows)
	if err != nil {
		return nil, newStartupError(ErrBadMatrix, path, err)
	}
	return m, nil
}
