// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"fmt"
	"sync"
)

// Factory creates a new window for the given options.
type Factory func(opts Options) (Window, error)

// registry holds registered window backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]entry)
)

type entry struct {
	factory  Factory
	priority int
}

// Backend name constants.
const (
	// BackendGLFW is the name of the GLFW desktop backend.
	BackendGLFW = "glfw"
	// BackendOffscreen is the name of the headless backend.
	BackendOffscreen = "offscreen"
)

// Register registers a window backend under the given name. Higher
// priority backends are preferred by CreateDefault. Registering an
// existing name replaces the previous entry.
//
// This is typically called from init functions in backend files.
func Register(name string, priority int, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = entry{factory: factory, priority: priority}
}

// Available returns the names of all registered backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// Create creates a window using the named backend.
func Create(name string, opts Options) (Window, error) {
	registryMu.RLock()
	e, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return e.factory(opts)
}

// CreateDefault creates a window using the highest-priority registered
// backend.
func CreateDefault(opts Options) (Window, error) {
	registryMu.RLock()
	var (
		best     Factory
		bestName string
		bestPrio = -1
	)
	for name, e := range backends {
		if e.priority > bestPrio {
			best, bestName, bestPrio = e.factory, name, e.priority
		}
	}
	registryMu.RUnlock()

	if best == nil {
		return nil, ErrBackendNotAvailable
	}
	w, err := best(opts)
	if err != nil {
		return nil, fmt.Errorf("window: backend %q: %w", bestName, err)
	}
	return w, nil
}
