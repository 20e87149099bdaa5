// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Warn().Int64("movie_id", 42).Msg("poster unavailable")

	output := buf.String()
	if !strings.Contains(output, "poster unavailable") {
		t.Errorf("expected message in output, got: %s", output)
	}
	if !strings.Contains(output, `"level":"warn"`) {
		t.Errorf("expected warn level in output, got: %s", output)
	}
	if !strings.Contains(output, `"movie_id":42`) {
		t.Errorf("expected movie_id field in output, got: %s", output)
	}
}

func TestInit_ServiceAndVersion(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf, Version: "1.4.0"})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("ready")

	output := buf.String()
	if !strings.Contains(output, `"service":"reelmatch"`) {
		t.Errorf("expected service field, got: %s", output)
	}
	if !strings.Contains(output, `"version":"1.4.0"`) {
		t.Errorf("expected version field, got: %s", output)
	}
}

func TestRedactWriter(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "query parameter",
			in:   `{"error":"Get \"https://api.themoviedb.org/3/movie/1?api_key=s3cr3t&language=en-US\": timeout"}`,
			want: `{"error":"Get \"https://api.themoviedb.org/3/movie/1?api_key=REDACTED&language=en-US\": timeout"}`,
		},
		{
			name: "last parameter",
			in:   `{"url":"/3/movie/1?api_key=s3cr3t"}`,
			want: `{"url":"/3/movie/1?api_key=REDACTED"}`,
		},
		{
			name: "percent encoded",
			in:   `{"url":"next%3Fapi_key%3Ds3cr3t"}`,
			want: `{"url":"next%3Fapi_key%3DREDACTED"}`,
		},
		{
			name: "untouched",
			in:   `{"message":"Poster cache ready"}`,
			want: `{"message":"Poster cache ready"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := &redactWriter{out: &buf}

			n, err := w.Write([]byte(tt.in))
			if err != nil {
				t.Fatalf("write: %v", err)
			}
			if n != len(tt.in) {
				t.Errorf("expected n=%d, got %d", len(tt.in), n)
			}
			if buf.String() != tt.want {
				t.Errorf("got %s, want %s", buf.String(), tt.want)
			}
		})
	}
}

func TestInit_RedactsAPIKey(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Warn().Str("url", "https://api.themoviedb.org/3/movie/597?api_key=abcdef123").Msg("request failed")

	if strings.Contains(buf.String(), "abcdef123") {
		t.Errorf("api key leaked: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCtx_AddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	Ctx(ctx).Info().Msg("lookup")

	output := buf.String()
	if !strings.Contains(output, `"request_id":"req-1"`) {
		t.Errorf("missing request_id: %s", output)
	}
	if !strings.Contains(output, `"correlation_id":"corr-1"`) {
		t.Errorf("missing correlation_id: %s", output)
	}
}

func TestForComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithCorrelationID(context.Background(), "corr-9")
	ctx = ContextWithRequestID(ctx, "req-9")
	ForComponent(ctx, "poster").Warn().Msg("placeholder")

	output := buf.String()
	for _, want := range []string{`"component":"poster"`, `"request_id":"req-9"`, `"correlation_id":"corr-9"`} {
		if !strings.Contains(output, want) {
			t.Errorf("missing %s in %s", want, output)
		}
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("empty context should have no request id")
	}
}

func TestGenerateIDs(t *testing.T) {
	t.Parallel()

	if got := len(GenerateCorrelationID()); got != 8 {
		t.Errorf("correlation ID length = %d, want 8", got)
	}
	if GenerateRequestID() == GenerateRequestID() {
		t.Error("request IDs should be unique")
	}
}

func TestSlogHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf)))
	logger.WithGroup("svc").Warn("restarting", slog.String("name", "http-server"), slog.Int("attempt", 2))

	output := buf.String()
	if !strings.Contains(output, `"svc.name":"http-server"`) {
		t.Errorf("expected grouped attr, got: %s", output)
	}
	if !strings.Contains(output, `"level":"warn"`) {
		t.Errorf("expected warn level, got: %s", output)
	}
}

func TestSlogHandler_AttrsAndNestedGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf))).
		With(slog.String("supervisor", "api-layer")).
		WithGroup("event")
	logger.Error("service failed",
		slog.Group("backoff", slog.Duration("wait", 0), slog.Int("failures", 5)),
		slog.Any("err", io.ErrUnexpectedEOF),
	)

	output := buf.String()
	for _, want := range []string{
		`"supervisor":"api-layer"`,
		`"event.backoff.failures":5`,
		`"event.err":"unexpected EOF"`,
		`"level":"error"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("missing %s in %s", want, output)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(NewTestLogger(io.Discard).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}
