// Package logging provides the process-wide leveled logger.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, log.InfoLevel)
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Prefix:          "navigator",
	})
}

// Init replaces the global logger. Unknown level names fall back to info.
func Init(level string, w io.Writer) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if w == nil {
		w = os.Stderr
	}
	l := newLogger(w, lvl)

	mu.Lock()
	logger = l
	mu.Unlock()
}

// L returns the global logger.
func L() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// For returns a logger tagged with a component name.
func For(component string) *log.Logger {
	return L().With("component", component)
}
