// Package logger provides structured logging and run metrics for bis-schedules.
//
// Messages carry a level (DEBUG, INFO, WARN, ERROR) and arbitrary structured fields.
// Output is either JSON lines, one object per message, or colored console text
// rendered by tint. Logs are written to stderr by default so stdout stays free for
// calendar output.
//
// Example usage:
//
//	logger.Info("writing calendar", logger.Fields{
//	    "team": "Sharks",
//	    "file": "Sharks.ics",
//	})
//
//	logger.Error("fetch failed", logger.Fields{"url": url}, err)
//
//	logger.IncrCounter("games")
//	logger.RecordTiming("fetch", duration)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/lmittmann/tint"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Format selects how log records are rendered
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger provides structured logging
type Logger struct {
	minLevel Level
	slog     *slog.Logger
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(LevelInfo, os.Stderr)
}

// New creates a logger writing JSON lines to output.
// Messages below the minimum level are discarded.
func New(level Level, output io.Writer) *Logger {
	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: level.slogLevel(),
	})
	return &Logger{minLevel: level, slog: slog.New(handler)}
}

// NewText creates a logger writing human-readable console lines to output
func NewText(level Level, output io.Writer, color bool) *Logger {
	handler := tint.NewHandler(output, &tint.Options{
		Level:      level.slogLevel(),
		TimeFormat: time.Kitchen,
		NoColor:    !color,
	})
	return &Logger{minLevel: level, slog: slog.New(handler)}
}

// NewWithFormat creates a logger for the given output format
func NewWithFormat(level Level, format Format, output io.Writer, color bool) *Logger {
	if format == FormatText {
		return NewText(level, output, color)
	}
	return New(level, output)
}

// ParseLevel converts a level name to a Level, defaulting to INFO
func ParseLevel(name string) Level {
	switch Level(name) {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return Level(name)
	default:
		return LevelInfo
	}
}

// SetDefault sets the logger used by the package-level functions
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

func (level Level) slogLevel() slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// log writes a structured log entry
func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !l.shouldLog(level) {
		return
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys)+1)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	l.slog.LogAttrs(context.Background(), level.slogLevel(), message, attrs...)
}

// shouldLog determines if a message should be logged based on level
func (l *Logger) shouldLog(level Level) bool {
	return level.slogLevel() >= l.minLevel.slogLevel()
}

// Debug logs detailed diagnostic information
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs general operational information
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs potential issues that don't prevent operation
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs failures, with the error that caused them
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	defaultLogger.Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}
