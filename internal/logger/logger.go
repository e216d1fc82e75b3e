// Package logger provides stderr logging for the retrieval pipeline.
// Debug, Info and Section trace the pipeline stages and only print in
// verbose mode (--verbose). Warn always prints: the engine fails open,
// so a warning is often the only visible trace that an answer came
// from a fallback path (local embedding, heuristic evaluation, skipped
// documents).
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
	output  io.Writer = os.Stderr
)

// SetVerbose toggles pipeline tracing.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether pipeline tracing is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log output. Defaults to os.Stderr; tests point
// it at a buffer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// logf writes one prefixed line. Callers hold at least a read lock.
func logf(prefix, format string, args ...any) {
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Debug traces a pipeline detail (cache hits, vector dimensions,
// skipped records). Verbose only.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		logf("[DEBUG] ", format, args...)
	}
}

// Section marks the start of a pipeline stage in the trace. Verbose
// only.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info reports a pipeline stage outcome. Verbose only.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		logf("[INFO] ", format, args...)
	}
}

// Warn reports a degradation: a backend that could not be reached, a
// fallback that took over, a record that had to be skipped. Printed
// regardless of verbose mode.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logf("[WARN] ", format, args...)
}
