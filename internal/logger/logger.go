// Package logger provides file-based structured logging for dmterm.
//
// Output goes to a rotating log file rather than the terminal so debug
// information never corrupts the TUI screen.
package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

var log = slog.New(slog.NewTextHandler(io.Discard, nil))

// Init configures the global logger to write to path at the given level.
// verbose forces debug level regardless of level.
func Init(path, level string, verbose bool) {
	lvl := parseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     14, // days
	}

	log = slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: lvl}))
}

func parseLevel(level string) slog.Level {
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

// SetOutput redirects logging to w. Used by tests.
func SetOutput(w io.Writer, level slog.Level) {
	log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	log.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	log.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	log.Error(msg, args...)
}

// DebugEnabled returns true if debug logging is enabled
func DebugEnabled() bool {
	return log.Enabled(context.Background(), slog.LevelDebug)
}
