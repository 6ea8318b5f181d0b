// Package debug provides optional diagnostics for numerical code: a
// pluggable hook that fires when a check fails, and a logger that stays
// silent until enabled.
//
// Checks are meant for development. They never stop the program; the
// default hook only logs.
package debug

import (
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"sync/atomic"

	"github.com/born-ml/bessel/internal/tensor"
)

// EnvVar enables diagnostics at startup when set to a non-empty value.
const EnvVar = "BESSEL_DEBUG"

// Hook receives the message of a failed check.
type Hook func(msg string)

var (
	enabled atomic.Bool

	hookMu sync.RWMutex
	hook   Hook = logHook

	logger = log.New(os.Stderr, "[DBG] ", log.Ldate|log.Ltime)
)

func init() {
	if os.Getenv(EnvVar) != "" {
		enabled.Store(true)
	}
}

// Enable turns diagnostics on.
func Enable() { enabled.Store(true) }

// Disable turns diagnostics off.
func Disable() { enabled.Store(false) }

// Enabled reports whether diagnostics are on. Callers use it to skip the
// cost of a check entirely.
func Enabled() bool { return enabled.Load() }

// SetHook replaces the failure hook and returns a function restoring the
// previous one. A nil hook restores the default logger.
func SetHook(h Hook) (restore func()) {
	if h == nil {
		h = logHook
	}
	hookMu.Lock()
	prev := hook
	hook = h
	hookMu.Unlock()

	return func() {
		hookMu.Lock()
		hook = prev
		hookMu.Unlock()
	}
}

// SetOutput redirects the debug logger.
func SetOutput(l *log.Logger) {
	hookMu.Lock()
	defer hookMu.Unlock()
	logger = l
}

// Printf logs through the debug logger when diagnostics are enabled.
func Printf(format string, v ...any) {
	if !Enabled() {
		return
	}
	hookMu.RLock()
	l := logger
	hookMu.RUnlock()
	l.Printf(format, v...)
}

// Check calls the hook with msg when ok is false. It returns ok.
func Check(ok bool, msg string) bool {
	if !ok {
		hookMu.RLock()
		h := hook
		hookMu.RUnlock()
		h(msg)
	}
	return ok
}

// CheckFinite reports whether every element of t is finite, calling the
// hook with msg and the first offending index otherwise. Tensors on an
// accelerator are read back for the scan.
func CheckFinite(t *tensor.RawTensor, msg string) bool {
	values, err := tensor.Values(t)
	if err != nil {
		return Check(false, fmt.Sprintf("%s: %v", msg, err))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Check(false, fmt.Sprintf("%s: element %d is %v", msg, i, v))
		}
	}
	return true
}

func logHook(msg string) {
	hookMu.RLock()
	l := logger
	hookMu.RUnlock()
	l.Print(msg)
}
