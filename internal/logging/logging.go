// Package logging provides leveled, structured logging for keytrie.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Level represents the severity level of a log message.
type Level int

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a string into a Level. Unknown names yield info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) charm() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Config configures a logger.
type Config struct {
	// Level is the minimum log level to output.
	Level Level
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Prefix is prepended to all log messages.
	Prefix string
	// JSON selects JSON output instead of text.
	JSON bool
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
		Prefix: "keytrie",
	}
}

// Logger writes structured log records.
type Logger struct {
	l *log.Logger
}

// New creates a logger with the given configuration.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := log.Options{
		Level:           cfg.Level.charm(),
		Prefix:          cfg.Prefix,
		ReportTimestamp: true,
	}
	if cfg.JSON {
		opts.Formatter = log.JSONFormatter
	}
	return &Logger{l: log.NewWithOptions(cfg.Output, opts)}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New(Config{Level: LevelError, Output: io.Discard})
}

// OpenFile creates a logger appending to the file at path. The returned
// closer closes the file.
func OpenFile(path string, cfg Config) (*Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	cfg.Output = f
	return New(cfg), f, nil
}

// With returns a logger that adds the key/value pairs to every record.
func (l *Logger) With(keyvals ...any) *Logger {
	return &Logger{l: l.l.With(keyvals...)}
}

// WithComponent returns a logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.With("component", component)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.l.SetLevel(level.charm())
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, keyvals ...any) {
	l.l.Debug(msg, keyvals...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, keyvals ...any) {
	l.l.Info(msg, keyvals...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, keyvals ...any) {
	l.l.Warn(msg, keyvals...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, keyvals ...any) {
	l.l.Error(msg, keyvals...)
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New(DefaultConfig())
)

// Default returns the package-level logger.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the package-level logger.
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
