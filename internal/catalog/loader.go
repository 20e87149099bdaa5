// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Paths locates the two model artifacts.
type Paths struct {
	Catalog    string
	Similarity string
}

// Load reads and validates both artifacts and returns the paired model.
// Any failure is a *StartupDataError and must stop the process.
func Load(ctx context.Context, paths Paths) (*Model, error) {
	start := time.Now()
	logger := logging.WithComponent("catalog")

	for _, p := range []string{paths.Catalog, paths.Similarity} {
		if err := checkArtifact(p); err != nil {
			return nil, err
		}
	}

	movies, err := loadCatalog(ctx, paths.Catalog)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, newStartupError(ErrBadCatalog, paths.Catalog, errors.New("catalog has no rows"))
	}

	matrix, err := loadMatrix(paths.Similarity)
	if err != nil {
		return nil, err
	}

	cat := NewCatalog(movies)
	model, err := NewModel(cat, matrix)
	if err != nil {
		var sde *StartupDataError
		if errors.As(err, &sde) {
			sde.Path = paths.Similarity
		}
		return nil, err
	}

	logger.Info().
		Str("catalog", paths.Catalog).
		Str("similarity", paths.Similarity).
		Int("movies", cat.Len()).
		Int("missing_ids", cat.MissingIDs()).
		Dur("elapsed", time.Since(start)).
		Msg("Model loaded")
	metrics.RecordModelLoad(cat.Len(), time.Since(start))

	if missing := cat.MissingIDs(); missing > 0 {
		logger.Warn().Int("rows", missing).Msg("Catalog rows without movie_id will be skipped in recommendations")
	}

	return model, nil
}

func checkArtifact(path string) error {
	if path == "" {
		return newStartupError(ErrMissingArtifact, path, errors.New("path not configured"))
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newStartupError(ErrMissingArtifact, path, err)
		}
		return newStartupError(ErrMissingArtifact, path, fmt.Errorf("stat: %w", err))
	}
	if info.IsDir() {
		return newStartupError(ErrMissingArtifact, path, errors.New("is a directory"))
	}
	return nil
}

func loadCatalog(ctx context.Context, path string) ([]Movie, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return readJSONCatalog(path)
	case ".csv":
		return readDuckDBCatalog(ctx, path, "read_csv_auto")
	case ".parquet":
		return readDuckDBCatalog(ctx, path, "read_parquet")
	default:
		return nil, newStartupError(ErrUnsupportedFormat, path, fmt.Errorf("catalog extension %q", ext))
	}
}

func loadMatrix(path string) (*SimilarityMatrix, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return readJSONMatrix(path)
	case ".npy":
		return readNPYMatrix(path)
	default:
		return nil, newStartupError(ErrUnsupportedFormat, path, fmt.Errorf("similarity extension %q", ext))
	}
}
