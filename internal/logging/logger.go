// Package logging wraps slog so the rest of the assistant never touches
// handler setup. Output goes to stdout by default and optionally to a file,
// in text or JSON form.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is a slog.Logger plus ownership of the log file, if any.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New returns an info-level text logger on stdout.
func New() *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NewWithConfig builds a logger from the config file's logging section.
// Unknown levels mean info; an unopenable file path falls back to stdout
// rather than failing startup.
func NewWithConfig(level, format, filePath string) *Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	var output io.Writer = os.Stdout
	var logFile *os.File
	if filePath != "" {
		if f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			output = f
			logFile = f
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return &Logger{Logger: slog.New(handler), file: logFile}
}

// Component returns a child logger tagged with the subsystem name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{Logger: l.Logger.With("component", name), file: nil}
}

// Close releases the log file when one is open. The owning Logger should be
// closed once, at shutdown.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
