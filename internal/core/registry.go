package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]PlatformDefinition)
	registryMu sync.RWMutex
)

// Register adds a platform definition to the registry.
// Panics if a platform with the same key is already registered.
func Register(def PlatformDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("platform already registered: %s", def.Info.Key))
	}
	if def.NewParser == nil || def.Build == nil {
		panic(fmt.Sprintf("platform %s registered without parser or builder", def.Info.Key))
	}

	registry[def.Info.Key] = def
}

// Get returns a platform definition by key.
// Returns false if not found.
func Get(key string) (PlatformDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns all registered platform definitions.
// Sorted by key for consistent ordering.
func All() []PlatformDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]PlatformDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// PlatformCount returns the number of registered platforms.
func PlatformCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered platforms.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]PlatformDefinition)
}
