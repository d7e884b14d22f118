// Package debug provides conditional debug logging for lungmap.
//
// Debug logging is enabled by setting the LUNGMAP_DEBUG environment
// variable:
//
//	LUNGMAP_DEBUG=1 lungmap
//
// The TUI owns the terminal, so messages go to a file rather than stderr:
// LUNGMAP_DEBUG_FILE if set, otherwise lungmap-debug.log in the working
// directory. When disabled (default), all functions are no-ops.
//
// Usage:
//
//	debug.Log("selected %s", region.Name)
//	defer debug.LogEnterExit("render")()
package debug

import (
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// DefaultFile is used when LUNGMAP_DEBUG_FILE is unset.
const DefaultFile = "lungmap-debug.log"

const prefix = "[LUNGMAP_DEBUG] "

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
	closer  io.Closer
)

func init() {
	if os.Getenv("LUNGMAP_DEBUG") == "" {
		return
	}
	path := os.Getenv("LUNGMAP_DEBUG_FILE")
	if path == "" {
		path = DefaultFile
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		SetOutput(os.Stderr)
		return
	}
	closer = f
	SetOutput(f)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetOutput enables logging to w. A nil writer disables logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		enabled = false
		logger = nil
		return
	}
	enabled = true
	logger = log.New(w, prefix, log.Ltime|log.Lmicroseconds)
}

// Close disables logging and closes the log file opened at startup.
func Close() error {
	SetOutput(nil)
	mu.Lock()
	c := closer
	closer = nil
	mu.Unlock()
	if c != nil {
		return c.Close()
	}
	return nil
}

func current() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return nil
	}
	return logger
}

// Log writes a printf-style debug message if debug logging is enabled.
func Log(format string, args ...any) {
	if l := current(); l != nil {
		l.Printf(format, args...)
	}
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if l := current(); l != nil {
		l.Printf("%s took %v", name, d)
	}
}

// LogEnterExit logs function entry and exit with timing.
//
//	defer debug.LogEnterExit("View")()
func LogEnterExit(name string) func() {
	l := current()
	if l == nil {
		return func() {}
	}
	l.Printf("-> %s", name)
	start := time.Now()
	return func() {
		l.Printf("<- %s (%v)", name, time.Since(start))
	}
}

// Section logs a section header for visual organization in debug output.
func Section(name string) {
	if l := current(); l != nil {
		l.Printf("=== %s ===", name)
	}
}
