// Package logging configures charmbracelet/log for textkit: one default
// logger on stderr whose level comes from --debug or TEXTKIT_LOG_LEVEL, and
// loggers carried through contexts so library code logs with the caller's
// fields.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// LevelEnvVar sets the initial level of the default logger.
const LevelEnvVar = "TEXTKIT_LOG_LEVEL"

//nolint:gochecknoglobals // Process-wide default logger.
var defaultLogger atomic.Pointer[log.Logger]

// ParseLevel converts a level name to a log.Level. Unknown names are info.
func ParseLevel(name string) log.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "trace":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// NewWithWriter creates a logger writing to w at the named level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(ParseLevel(level))

	return logger
}

// New creates a stderr logger at the named level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewInteractive creates the logger for commands that talk to the user
// directly, such as init. Its lines carry a textkit prefix.
func NewInteractive() *log.Logger {
	logger := New("info")
	logger.SetPrefix("textkit")

	return logger
}

// Default returns the process-wide logger, creating it on first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}

	defaultLogger.CompareAndSwap(nil, New(os.Getenv(LevelEnvVar)))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
