// Package debug is the opt-in diagnostic log for the listbox demo.
// It stays silent unless --debug is passed; when enabled, entries go to
// ~/.listbox/debug.log, which is truncated on every launch.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	// LogFileName is the name of the debug log file.
	LogFileName = "debug.log"
	// LogDirName is the directory under the user's home holding the log file.
	LogDirName = ".listbox"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  *log.Logger
	logFile *os.File

	// getLogPath is swapped out by tests.
	getLogPath = defaultGetLogPath
)

// Init turns logging on or off. Disabled logging discards every entry.
func Init(enable bool) error {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable
	if !enable {
		logger = log.New(io.Discard, "", 0)
		return nil
	}

	logPath, err := getLogPath()
	if err != nil {
		return fmt.Errorf("determine log path: %w", err)
	}

	//nolint:gosec // G301: log directory lives under the user's home
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	//nolint:gosec // G304: path is derived from the user's home directory
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f

	logger = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	logger.Printf("=== listbox debug log started at %s ===", time.Now().Format(time.RFC3339))
	return nil
}

// Close releases the log file. Safe to call when logging is disabled.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Log writes an entry in the manner of fmt.Print.
func Log(v ...any) {
	mu.RLock()
	defer mu.RUnlock()

	if !enabled || logger == nil {
		return
	}
	logger.Print(v...)
}

// Logf writes an entry in the manner of fmt.Printf.
func Logf(format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()

	if !enabled || logger == nil {
		return
	}
	logger.Printf(format, v...)
}

// Enabled reports whether entries are being written.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Scope prefixes every entry with a component name, e.g. "listbox[First]".
type Scope string

// Logf writes a prefixed entry.
func (s Scope) Logf(format string, v ...any) {
	if !Enabled() {
		return
	}
	Logf(string(s)+": "+format, v...)
}

func defaultGetLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}

// GetLogPath returns where the log file is written.
func GetLogPath() (string, error) {
	return getLogPath()
}
