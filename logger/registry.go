package logger

import (
	"slices"
	"sync"
)

// named maps component names to loggers. Packages fetch theirs with
// Get("useragent"); an application can Register a differently configured
// logger under that name first.
var named sync.Map

// Register installs l as the logger for name, replacing any previous one.
func Register(name string, l *Logger) { named.Store(name, l) }

// Unregister removes name. Later Get calls fall back to the global logger.
func Unregister(name string) { named.Delete(name) }

// Get returns the logger registered for name, or the global logger tagged
// with component=name. The fallback is built per call so it follows
// SetGlobalLogger.
func Get(name string) *Logger {
	if l, ok := named.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}

// Names returns the registered names, sorted.
func Names() []string {
	var names []string
	named.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	slices.Sort(names)
	return names
}
