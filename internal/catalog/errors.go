// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"errors"
	"fmt"
)

// Startup failure kinds. Match them with errors.Is against a *StartupDataError.
var (
	ErrMissingArtifact   = errors.New("model artifact not found")
	ErrUnsupportedFormat = errors.New("unsupported artifact format")
	ErrBadCatalog        = errors.New("catalog is not a table")
	ErrMissingColumn     = errors.New("required catalog column missing")
	ErrBadMatrix         = errors.New("similarity data is not a square numeric matrix")
	ErrShapeMismatch     = errors.New("similarity matrix does not match catalog size")
)

// StartupDataError reports a model artifact that cannot be used.
// It is fatal: the process must not serve lookups after receiving one.
type StartupDataError struct {
	// Kind is one of the Err* sentinels above.
	Kind error

	// Path is the artifact that failed, if any.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *StartupDataError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v (%s): %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *StartupDataError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newStartupError(kind error, path string, err error) *StartupDataError {
	if err == nil {
		err = kind
	}
	return &StartupDataError{Kind: kind, Path: path, Err: err}
}
