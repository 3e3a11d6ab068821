// Package log is the shell's diagnostic logger: a process-global
// charmbracelet/log instance writing to a file under the state
// directory. All helpers are safe to call before Init; they discard.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

var (
	mu     sync.RWMutex
	logger *charmlog.Logger
	file   *os.File
)

// ParseLevel converts a string to a log level. Unrecognized values
// fall back to warn.
func ParseLevel(s string) charmlog.Level {
	level, err := charmlog.ParseLevel(s)
	if err != nil {
		return charmlog.WarnLevel
	}
	return level
}

// Init opens the log file and installs the global logger. The log
// directory is created with restrictive permissions.
func Init(path string, level charmlog.Level) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l := charmlog.NewWithOptions(f, charmlog.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		_ = file.Close()
	}
	logger = l
	file = f
	return nil
}

// Close closes the global logger's file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger = nil
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func get() *charmlog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, kv ...any) {
	if l := get(); l != nil {
		l.Debug(msg, kv...)
	}
}

// Info logs an informational message.
func Info(msg string, kv ...any) {
	if l := get(); l != nil {
		l.Info(msg, kv...)
	}
}

// Warn logs a warning.
func Warn(msg string, kv ...any) {
	if l := get(); l != nil {
		l.Warn(msg, kv...)
	}
}

// Error logs an error.
func Error(msg string, kv ...any) {
	if l := get(); l != nil {
		l.Error(msg, kv...)
	}
}
