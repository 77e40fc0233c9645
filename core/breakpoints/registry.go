package breakpoints

import (
	"fmt"
	"sync"
)

// Registry manages scheme registration and lookup by name.
type Registry struct {
	mu      sync.RWMutex
	schemes map[string]*Scheme
	order   []string // maintains registration order
}

// NewRegistry creates an empty scheme registry.
func NewRegistry() *Registry {
	return &Registry{
		schemes: make(map[string]*Scheme),
	}
}

// Register adds a scheme to the registry.
func (r *Registry) Register(s *Scheme) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.schemes[name]; exists {
		return fmt.Errorf("scheme already registered: %s", name)
	}

	r.schemes[name] = s
	r.order = append(r.order, name)
	return nil
}

// Get returns a scheme by name.
func (r *Registry) Get(name string) (*Scheme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemes[name]
	return s, ok
}

// Names returns the registered scheme names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Global default registry; the EPA scheme is registered at init.
var defaultRegistry = NewRegistry()

// Register adds a scheme to the default registry.
func Register(s *Scheme) error {
	return defaultRegistry.Register(s)
}

// Lookup returns a scheme from the default registry.
func Lookup(name string) (*Scheme, bool) {
	return defaultRegistry.Get(name)
}

// Names lists the default registry's scheme names.
func Names() []string {
	return defaultRegistry.Names()
}

// Default returns the default registry.
func Default() *Registry {
	return defaultRegistry
}
