// Package debuglog is a leveled file logger. The TUI owns the terminal, so
// nothing here writes to stdout or stderr.
package debuglog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff // Disables all logging
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel. Unknown input maps to INFO.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "OFF", "NONE":
		return LevelOff
	default:
		return LevelInfo
	}
}

// Fetch commands log from their own goroutines.
var (
	mu           sync.RWMutex
	currentLevel = LevelOff
	logger       *log.Logger
	logFile      *os.File
)

// Setup configures the level and optional file path.
// If filePath is empty, defaults to ~/.hnstories/hnstories.log.
func Setup(level LogLevel, filePath ...string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	currentLevel = level

	if level == LevelOff {
		return nil
	}

	var logPath string
	if len(filePath) > 0 && filePath[0] != "" {
		logPath = filePath[0]
	} else {
		home, _ := os.UserHomeDir()
		logPath = filepath.Join(home, ".hnstories", "hnstories.log")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", logPath, err)
	}

	logFile = f
	logger = newLogger(f)
	return nil
}

// SetOutput sends log lines to w at the given level. Tests use it to capture output.
func SetOutput(level LogLevel, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	currentLevel = level
	if w != nil && level != LevelOff {
		logger = newLogger(w)
	}
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "hnstories ", log.LstdFlags|log.Lmicroseconds)
}

func SetLevel(level LogLevel) {
	mu.Lock()
	currentLevel = level
	mu.Unlock()
}

func GetLevel() LogLevel {
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel
}

// Close closes the log file if open
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	logger = nil
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func logf(level LogLevel, suffix string, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()

	if level < currentLevel || logger == nil {
		return
	}
	logger.Printf("[%s] %s%s", level.String(), fmt.Sprintf(format, args...), suffix)
}

func Debugf(format string, args ...any) { logf(LevelDebug, "", format, args...) }
func Infof(format string, args ...any)  { logf(LevelInfo, "", format, args...) }
func Warnf(format string, args ...any)  { logf(LevelWarn, "", format, args...) }
func Errorf(format string, args ...any) { logf(LevelError, "", format, args...) }

// FieldLogger appends key=value pairs to every message.
type FieldLogger struct {
	fields map[string]interface{}
}

func WithFields(fields map[string]interface{}) *FieldLogger {
	return &FieldLogger{fields: fields}
}

// formatFields renders fields sorted by key so lines are stable.
func (fl *FieldLogger) formatFields() string {
	if len(fl.fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fl.fields))
	for k := range fl.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, fl.fields[k])
	}
	return " [" + strings.Join(parts, " ") + "]"
}

func (fl *FieldLogger) Debugf(format string, args ...any) {
	logf(LevelDebug, fl.formatFields(), format, args...)
}

func (fl *FieldLogger) Infof(format string, args ...any) {
	logf(LevelInfo, fl.formatFields(), format, args...)
}

func (fl *FieldLogger) Warnf(format string, args ...any) {
	logf(LevelWarn, fl.formatFields(), format, args...)
}

func (fl *FieldLogger) Errorf(format string, args ...any) {
	logf(LevelError, fl.formatFields(), format, args...)
}
