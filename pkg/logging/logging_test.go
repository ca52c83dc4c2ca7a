package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	cases := []struct {
		name  string
		level string
		check slog.Level
		want  bool
	}{
		{name: "debug enables debug", level: "debug", check: slog.LevelDebug, want: true},
		{name: "info disables debug", level: "info", check: slog.LevelDebug, want: false},
		{name: "warn enables warn", level: "WARN", check: slog.LevelWarn, want: true},
		{name: "error disables warn", level: "error", check: slog.LevelWarn, want: false},
		{name: "unknown defaults to info", level: "trace", check: slog.LevelInfo, want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger := New(tc.level, "json")
			if logger == nil {
				t.Fatalf("expected logger instance")
			}
			got := logger.Enabled(ctx, tc.check)
			if got != tc.want {
				t.Fatalf("Enabled(%v) = %t, want %t", tc.check, got, tc.want)
			}
		})
	}
}

func TestNewWithWriterFormats(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter(&buf, "info", "json").Info("hello", slog.String("k", "v"))

		var record map[string]any
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
		}
		if record["msg"] != "hello" || record["k"] != "v" {
			t.Fatalf("unexpected record %v", record)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter(&buf, "info", "text").Info("hello")
		if !strings.Contains(buf.String(), "msg=hello") {
			t.Fatalf("expected text output, got %q", buf.String())
		}
	})

	t.Run("auto on a non-terminal is json", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter(&buf, "info", "auto").Info("hello")
		if !strings.HasPrefix(buf.String(), "{") {
			t.Fatalf("expected JSON output, got %q", buf.String())
		}
	})
}
