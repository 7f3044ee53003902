// Package logger provides the level-filtered console logger used for
// verbose diagnostics. The inconsistency report itself is rendered by the
// display package; this logger only carries timing and bookkeeping detail
// behind the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// ConsoleLogger writes timestamped, level-filtered messages to a writer.
// It is safe for concurrent use. Color output is enabled automatically when
// writing to a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	level       int
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger writing to w. Valid levels are
// debug, info, warn and error (case-insensitive); anything else defaults to
// info. A nil writer discards all messages.
func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		level:       parseLevel(level),
		colorOutput: isTerminal(w),
	}
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// isTerminal reports whether w is a color-capable standard stream.
func isTerminal(w io.Writer) bool {
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}
	return false
}

// Debugf logs a formatted debug-level message.
func (cl *ConsoleLogger) Debugf(format string, args ...any) {
	cl.logf(levelDebug, "DEBUG", format, args...)
}

// Infof logs a formatted info-level message.
func (cl *ConsoleLogger) Infof(format string, args ...any) {
	cl.logf(levelInfo, "INFO", format, args...)
}

// Warnf logs a formatted warn-level message.
func (cl *ConsoleLogger) Warnf(format string, args ...any) {
	cl.logf(levelWarn, "WARN", format, args...)
}

// Errorf logs a formatted error-level message.
func (cl *ConsoleLogger) Errorf(format string, args ...any) {
	cl.logf(levelError, "ERROR", format, args...)
}

func (cl *ConsoleLogger) logf(level int, tag, format string, args ...any) {
	if cl.writer == nil || level < cl.level {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := time.Now().Format("15:04:05")
	if cl.colorOutput {
		tag = colorizeTag(tag)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, tag, fmt.Sprintf(format, args...))
}

func colorizeTag(tag string) string {
	switch tag {
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(tag)
	case "INFO":
		return color.New(color.FgBlue).Sprint(tag)
	case "WARN":
		return color.New(color.FgYellow).Sprint(tag)
	case "ERROR":
		return color.New(color.FgRed).Sprint(tag)
	default:
		return tag
	}
}
