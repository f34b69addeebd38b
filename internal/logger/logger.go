// Package logger prints pipeline progress to stderr when verbose mode is
// enabled. Diagnostics stay on stderr so command output on stdout remains
// clean for piping.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	out     io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
}

// logf writes one line with the given prefix when verbose mode is on.
func logf(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(out, prefix+format+"\n", args...)
}

// Debug prints a debug-level message.
func Debug(format string, args ...any) { logf("[DEBUG] ", format, args...) }

// Info prints an informational message.
func Info(format string, args ...any) { logf("[INFO] ", format, args...) }

// Warn prints a warning.
func Warn(format string, args ...any) { logf("[WARN] ", format, args...) }

// Section prints a banner separating pipeline stages in the log stream.
func Section(format string, args ...any) { logf("\n=== ", format+" ===", args...) }
