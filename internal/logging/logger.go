// internal/logging/logger.go

// Package logging 依 config.LogConfig 建立 slog.Logger。
// 支援 text / json 兩種格式；輸出目標為 stdout、stderr 或丟棄。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"personalledger/internal/config"
)

// New 依設定建立 logger，輸出目標取自 cfg.Output。
func New(cfg config.LogConfig) *slog.Logger {
	return NewWithWriter(cfg, destination(cfg.Output))
}

// NewWithWriter 與 New 相同，但輸出目標由呼叫端指定（主控台模式寫到 stderr、測試寫到 buffer）。
func NewWithWriter(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// destination 將設定字串轉為 io.Writer；未知值一律使用 stdout。
func destination(name string) io.Writer {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "stderr":
		return os.Stderr
	case "discard", "none":
		return io.Discard
	default:
		return os.Stdout
	}
}

// parseLevel 未知或空白等級視為 INFO。
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
