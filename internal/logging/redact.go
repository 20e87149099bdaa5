// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package logging

import (
	"io"
	"regexp"
)

// apiKeyParam matches the TMDB api_key query parameter, raw or
// percent-encoded, as it appears in wrapped HTTP client errors.
var apiKeyParam = regexp.MustCompile(`(api_key(?:=|%3D))[^&"\s\\]+`)

// redactWriter masks api_key values. zerolog writes each event with a single
// Write, so a key never straddles two calls.
type redactWriter struct {
	out io.Writer
}

func (w *redactWriter) Write(p []byte) (int, error) {
	if !apiKeyParam.Match(p) {
		return w.out.Write(p)
	}
	if _, err := w.out.Write(apiKeyParam.ReplaceAll(p, []byte("${1}REDACTED"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
