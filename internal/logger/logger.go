// Package logger provides the level-filtered console logger used by the CLI
// layer for progress reporting and debug tracing. The generation core itself
// never logs errors; failures propagate to the caller.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// Logger writes timestamped, optionally colored messages to a writer.
// All output is prefixed with [HH:MM:SS] timestamps. It is safe for
// concurrent use, though generation itself is single-threaded.
type Logger struct {
	writer io.Writer
	level  int
	mutex  sync.Mutex
	color  bool
}

// New creates a Logger writing to w at the given minimum level.
// Valid levels: debug, info, warn, error (case-insensitive); empty or
// invalid levels default to "info". If w is nil, messages are discarded.
// Color is enabled only when w is a terminal; NO_COLOR is honored through
// the color package.
func New(w io.Writer, level string) *Logger {
	return &Logger{
		writer: w,
		level:  levelToInt(normalizeLevel(level)),
		color:  isTerminal(w),
	}
}

// isTerminal reports whether w is a TTY that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLevel lowercases and validates a level string, defaulting to
// "info" for unknown values.
func normalizeLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

func levelToInt(level string) int {
	switch level {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	}
	return levelInfo
}

// ValidLevel reports whether level is an accepted log level name.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, args ...any) {
	l.logf(levelDebug, color.FgHiBlack, format, args...)
}

// Infof logs an info-level message.
func (l *Logger) Infof(format string, args ...any) {
	l.logf(levelInfo, color.FgCyan, format, args...)
}

// Warnf logs a warn-level message.
func (l *Logger) Warnf(format string, args ...any) {
	l.logf(levelWarn, color.FgYellow, format, args...)
}

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, args ...any) {
	l.logf(levelError, color.FgRed, format, args...)
}

func (l *Logger) logf(level int, attr color.Attribute, format string, args ...any) {
	if l.writer == nil || level < l.level {
		return
	}
	message := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("15:04:05")

	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.color {
		message = color.New(attr).Sprint(message)
	}
	fmt.Fprintf(l.writer, "[%s] %s\n", timestamp, message)
}
