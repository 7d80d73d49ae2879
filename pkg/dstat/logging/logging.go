// Package logging provides component loggers for dstat diagnostics and the
// append-only error log used by the --logfile option.
//
// Basic usage:
//
//	if err := logging.Init(logging.Config{Level: "debug"}); err != nil {
//	    return err
//	}
//	defer logging.Close()
//
//	logger := logging.Get("scanner")
//	logger.Debug("scanning", "path", "/tmp")
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Level represents a logging level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
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

// toCharmLevel converts our Level to charmbracelet/log level.
func (l Level) toCharmLevel() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelInfo:
		return log.InfoLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses a string into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelWarn, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

// Config configures diagnostic logging.
type Config struct {
	// Level is the minimum level written (debug, info, warn, error).
	Level string

	// Output receives log lines. Nil means stderr.
	Output io.Writer
}

// Logger wraps charmbracelet/log with component identification.
type Logger struct {
	mu        sync.RWMutex
	inner     *log.Logger
	component string
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.current().Debug(msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.current().Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.current().Warn(msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.current().Error(msg, args...)
}

func (l *Logger) current() *log.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner
}

func (l *Logger) reset(inner *log.Logger) {
	l.mu.Lock()
	l.inner = inner
	l.mu.Unlock()
}

// state holds the global logging state.
type state struct {
	mu          sync.Mutex
	initialized bool
	level       Level
	output      io.Writer
	loggers     map[string]*Logger
}

var globalState = &state{
	loggers: make(map[string]*Logger),
}

// Init configures every component logger, including ones obtained before
// the call. Before Init, loggers write to io.Discard.
func Init(cfg Config) error {
	level := LevelWarn
	if cfg.Level != "" {
		parsed, err := ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("parsing log level: %w", err)
		}
		level = parsed
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	globalState.level = level
	globalState.output = out
	globalState.initialized = true

	for component, logger := range globalState.loggers {
		logger.reset(newCharmLogger(component))
	}
	return nil
}

// Get returns the logger for component, creating it on first use.
func Get(component string) *Logger {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if logger, ok := globalState.loggers[component]; ok {
		return logger
	}

	logger := &Logger{
		inner:     newCharmLogger(component),
		component: component,
	}
	globalState.loggers[component] = logger
	return logger
}

// newCharmLogger builds the underlying logger for component.
// Must be called with globalState.mu held.
func newCharmLogger(component string) *log.Logger {
	if !globalState.initialized {
		return log.NewWithOptions(io.Discard, log.Options{Prefix: component})
	}
	return log.NewWithOptions(globalState.output, log.Options{
		Level:           globalState.level.toCharmLevel(),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          component,
	})
}

// Close returns every logger to the silent pre-Init state.
func Close() error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	globalState.initialized = false
	globalState.output = nil
	for component, logger := range globalState.loggers {
		logger.reset(newCharmLogger(component))
	}
	return nil
}
