// Package logging provides the shared structured logger used by all Scythe
// components. The default logger writes to stderr; embedding engines replace
// it with Configure to route Scythe's output through their own logging.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	lock   sync.RWMutex
	logger *zap.Logger
)

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	logger = l
}

// Configure replaces the shared logger. Safe to call at any time, including
// between runs.
func Configure(l *zap.Logger) {
	lock.Lock()
	defer lock.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the shared logger
func Logger() *zap.Logger {
	lock.RLock()
	defer lock.RUnlock()
	return logger
}
