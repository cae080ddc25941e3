// Package log provides the structured JSON logger shared by every SchoolDB
// package.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is a thin wrapper on top of slog.Logger that writes JSON lines.
//
// The zero value is not usable, create it with NewLogger.
type Logger struct {
	slogger *slog.Logger
}

// NewLogger creates a new Logger that writes records at or above the given
// level to writer. SchoolDB passes os.Stderr so the console transcript on
// stdout is left untouched.
func NewLogger(writer io.Writer, level slog.Level) Logger {
	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})
	return Logger{
		slogger: slog.New(handler),
	}
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// IsInitialized reports whether the logger was created with NewLogger.
func (l Logger) IsInitialized() bool {
	return l.slogger != nil
}

// Info logs a structured info message.
func (l Logger) Info(msg string, keyVals ...KV) {
	l.slogger.Info(msg, kvToArgs(keyVals...)...)
}

// InfoNs logs a structured info message under a namespace.
//
// The namespace is logged as the first key-value pair ("ns") so records from
// different packages can be told apart.
func (l Logger) InfoNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Info(msg, kvToArgsNs(namespace, keyVals...)...)
}

// Debug logs a structured debug message.
func (l Logger) Debug(msg string, keyVals ...KV) {
	l.slogger.Debug(msg, kvToArgs(keyVals...)...)
}

// DebugNs logs a structured debug message under a namespace.
func (l Logger) DebugNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Debug(msg, kvToArgsNs(namespace, keyVals...)...)
}

// Warn logs a structured warning message.
func (l Logger) Warn(msg string, keyVals ...KV) {
	l.slogger.Warn(msg, kvToArgs(keyVals...)...)
}

// WarnNs logs a structured warning message under a namespace.
func (l Logger) WarnNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Warn(msg, kvToArgsNs(namespace, keyVals...)...)
}

// Error logs a structured error message.
func (l Logger) Error(msg string, keyVals ...KV) {
	l.slogger.Error(msg, kvToArgs(keyVals...)...)
}

// ErrorNs logs a structured error message under a namespace.
func (l Logger) ErrorNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Error(msg, kvToArgsNs(namespace, keyVals...)...)
}
