// Package logger は log/slog の構造化ロガーを組み立てる
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New は指定レベル・形式のロガーを標準出力向けに作成する
// level: "debug", "info", "warn", "error"（既定 "info"）
// format: "json" または "text"（既定 "text"）
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stdout, level, format)
}

// NewWithWriter は出力先を指定してロガーを作成する
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if strings.ToLower(format) == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h)
}

// ParseLevel はレベル名を slog.Level に変換する
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
