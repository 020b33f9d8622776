// Package logging provides the leveled console logger shared by all
// backplane commands, plus request ID context propagation.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level gating:
//   - debug/info/success print only in development mode or with the
//     debug override set
//   - warn/error always print
//   - perf prints only when the perf flag is set
var (
	mu        sync.RWMutex
	devMode   = true
	debugMode bool
	perfMode  bool
	out       io.Writer = os.Stderr
)

var (
	debugTag   = color.New(color.Faint).Sprint("DEBUG")
	infoTag    = color.New(color.FgCyan).Sprint("INFO ")
	successTag = color.New(color.FgGreen).Sprint("OK   ")
	warnTag    = color.New(color.FgYellow).Sprint("WARN ")
	errorTag   = color.New(color.FgRed).Sprint("ERROR")
	perfTag    = color.New(color.FgMagenta).Sprint("PERF ")
)

// Configure sets the gating flags. dev is normally derived from the
// environment name, debug and perf from their override flags.
func Configure(dev, debug, perf bool) {
	mu.Lock()
	defer mu.Unlock()
	devMode = dev
	debugMode = debug
	perfMode = perf
}

// SetOutput redirects log output. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

func verboseEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return devMode || debugMode
}

func perfEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return perfMode
}

func emit(tag, format string, args ...any) {
	mu.RLock()
	w := out
	mu.RUnlock()
	fmt.Fprintf(w, "%s %s %s\n", time.Now().Format("15:04:05"), tag, fmt.Sprintf(format, args...))
}

// Debugf logs developer detail. Suppressed outside development mode
// unless the debug override is set.
func Debugf(format string, args ...any) {
	if verboseEnabled() {
		emit(debugTag, format, args...)
	}
}

// Infof logs progress information. Suppressed outside development mode
// unless the debug override is set.
func Infof(format string, args ...any) {
	if verboseEnabled() {
		emit(infoTag, format, args...)
	}
}

// Successf logs a completed step. Gated like Infof.
func Successf(format string, args ...any) {
	if verboseEnabled() {
		emit(successTag, format, args...)
	}
}

// Warnf always prints.
func Warnf(format string, args ...any) {
	emit(warnTag, format, args...)
}

// Errorf always prints.
func Errorf(format string, args ...any) {
	emit(errorTag, format, args...)
}

// Perff logs timing detail, printed only when the perf flag is set.
func Perff(format string, args ...any) {
	if perfEnabled() {
		emit(perfTag, format, args...)
	}
}
