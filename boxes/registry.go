package boxes

import (
	"fmt"
	"sort"
	"sync"

	"github.com/petal-labs/machinebox/core"
)

// Factory creates a box client for the box reachable at baseURL.
type Factory func(baseURL string, opts ...core.Option) core.Box

// registry holds registered box factories.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a box factory to the registry.
// It is typically called from a box package's init() function.
// If a box with the same name is already registered, it will be overwritten.
//
// Example usage in a box package:
//
//	func init() {
//	    boxes.Register("textbox", func(baseURL string, opts ...core.Option) core.Box {
//	        return New(baseURL, opts...)
//	    })
//	}
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves a box factory by name.
// Returns nil if the box is not registered.
func Get(name string) Factory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[name]
}

// Create creates a box client by name for the box at baseURL.
// Returns an error if the box is not registered.
func Create(name, baseURL string, opts ...core.Option) (core.Box, error) {
	factory := Get(name)
	if factory == nil {
		return nil, fmt.Errorf("unknown box: %s (available: %v)", name, List())
	}
	return factory(baseURL, opts...), nil
}

// List returns the names of all registered boxes in sorted order.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered returns true if a box with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}
