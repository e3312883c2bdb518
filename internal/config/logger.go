package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the JSON slog logger used by both commands and installs
// it as the default.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).
		With(slog.String("env", cfg.Environment))
	slog.SetDefault(logger)
	return logger
}
