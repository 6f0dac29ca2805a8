// Package log provides the process-wide structured logger. The protocol
// engine logs control-plane events (initialization, route changes,
// connection lifecycle) through it; the packet path itself logs only at
// debug level.
package log

import (
	"sync"
)

// Logger is the logging surface handed to the rest of the program.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Warn(args ...interface{})
	Warnf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})

	WithField(field string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger

	IsDebugEnabled() bool
}

var (
	mu     sync.RWMutex
	logger Logger = newLogrusAdapter(defaultConfig())
)

// GetLogger returns the current global logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Init replaces the global logger according to cfg. Safe to call once at
// startup; packages that grabbed the logger earlier keep the default
// console logger.
func Init(cfg *Config) error {
	l, err := newConfiguredAdapter(cfg)
	if err != nil {
		return err
	}
	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}
