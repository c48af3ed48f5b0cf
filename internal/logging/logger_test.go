// internal/logging/logger_test.go

package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"personalledger/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q)=%v want %v", in, got, want)
		}
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info("dropped")
	logger.Warn("transfer failed", "from", 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if rec["msg"] != "transfer failed" {
		t.Errorf("unexpected msg %v", rec["msg"])
	}
}

func TestNewWithWriterText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LogConfig{Level: "debug", Format: " TEXT "}, &buf)
	logger.Debug("user created", "user_id", 123456)

	out := buf.String()
	if !strings.Contains(out, "msg=\"user created\"") || !strings.Contains(out, "user_id=123456") {
		t.Fatalf("unexpected text output: %s", out)
	}
}

func TestDestination(t *testing.T) {
	cases := map[string]io.Writer{
		"stderr":  os.Stderr,
		" NONE ":  io.Discard,
		"discard": io.Discard,
		"stdout":  os.Stdout,
		"":        os.Stdout,
	}
	for in, want := range cases {
		if got := destination(in); got != want {
			t.Errorf("destination(%q) mismatch", in)
		}
	}
}
