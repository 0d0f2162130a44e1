// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format represents the output format for logs.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// ParseLevel converts a level name to a slog level.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
}

// level backs the default logger so reloaded settings can change it.
var level = new(slog.LevelVar)

// New builds a logger writing to out.
func New(out io.Writer, leveler slog.Leveler, format Format) *slog.Logger {
	options := &slog.HandlerOptions{Level: leveler}
	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(out, options)
	} else {
		handler = slog.NewTextHandler(out, options)
	}
	return slog.New(handler).With("app", "blinkrest")
}

// Setup builds a logger from a level name and installs it as the default.
// Unknown level names fall back to info.
func Setup(out io.Writer, levelName string, format Format) *slog.Logger {
	parsed, err := ParseLevel(levelName)
	level.Set(parsed)
	logger := New(out, level, format)
	if err != nil {
		logger.Warn("falling back to info level", "error", err)
	}
	slog.SetDefault(logger)
	return logger
}

// SetLevel changes the level of the logger installed by Setup.
func SetLevel(levelName string) error {
	parsed, err := ParseLevel(levelName)
	if err != nil {
		return err
	}
	level.Set(parsed)
	return nil
}
