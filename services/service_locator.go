// Package services is a tiny process-wide service locator used to hand the
// logger and metrics sink to packages that would otherwise need to thread
// them through every constructor.
package services

import "sync"

type ServiceName string

const (
	ServiceLogger  ServiceName = "logger"
	ServiceMetrics ServiceName = "metrics"
)

var (
	mu       sync.RWMutex
	registry = make(map[ServiceName]interface{})
)

// Register binds a service under name, replacing any previous binding.
func Register(name ServiceName, service interface{}) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = service
}

// Get retrieves a registered service, or nil if none is bound.
func Get(name ServiceName) interface{} {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}
