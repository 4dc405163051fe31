package window

import (
	"fmt"
	"sort"
	"sync"
)

// Callable is a host function reachable from script by name.
type Callable func(args ...any) (any, error)

// Registry maps names to host callables and stores arbitrary named values.
// Callers register what they expose; nothing is reachable by reflection.
type Registry struct {
	mu        sync.RWMutex
	callables map[string]Callable
	things    map[string]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		callables: make(map[string]Callable),
		things:    make(map[string]any),
	}
}

// Register binds fn under name, replacing any previous binding.
func (r *Registry) Register(name string, fn Callable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callables[name] = fn
}

// Unregister removes the callable bound under name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.callables, name)
}

// Invoke calls the callable bound under name.
func (r *Registry) Invoke(name string, args ...any) (any, error) {
	r.mu.RLock()
	fn, ok := r.callables[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return fn(args...)
}

// Has reports whether a callable is bound under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.callables[name]
	return ok
}

// Names returns the registered callable names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.callables))
	for name := range r.callables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set stores a named value.
func (r *Registry) Set(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.things[name] = value
}

// Get returns a named value.
func (r *Registry) Get(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.things[name]
	return v, ok
}
