package check

import "sync"

// Registry holds the set of named checkers in registration order.
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	order    []string // Maintains registration order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		checkers: make(map[string]Checker),
		order:    make([]string, 0),
	}
}

// Register adds a checker under its own name. Registering the same
// name again replaces the checker but keeps its original position.
func (r *Registry) Register(c Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.checkers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.checkers[name] = c
}

// Lookup returns the checker registered under name.
func (r *Registry) Lookup(name string) (Checker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.checkers[name]
	return c, ok
}

// Names returns the names of all registered checkers in registration
// order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
