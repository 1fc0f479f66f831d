package logging

import (
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	current *Logger
)

// Init builds the process-wide logger from config and installs it.
// A previously installed logger is closed.
func Init(config *Config) (*Logger, error) {
	l, err := NewLogger(config)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	prev := current
	current = l
	mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	return l, nil
}

// Set installs l as the process-wide logger without closing the previous one.
func Set(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// GetLogger returns the process-wide logger. Before Init it falls back to an
// info-level stdout logger so early startup errors are never lost.
func GetLogger() *Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = NewWriterLogger(os.Stdout, LevelInfo)
	}
	return current
}
