package generator

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a generator.
type Factory func() (Generator, error)

// Registry maintains known generator factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register installs a generator factory. Returns an error if the ID already
// exists.
func (r *Registry) Register(id string, factory Factory) error {
	if id == "" {
		return fmt.Errorf("generator: id is required")
	}
	if factory == nil {
		return fmt.Errorf("generator: factory is required for %s", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("generator: %s already registered", id)
	}
	r.factories[id] = factory
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(id string, factory Factory) {
	if err := r.Register(id, factory); err != nil {
		panic(err)
	}
}

// Resolve constructs a generator by ID and validates its info block.
func (r *Registry) Resolve(id string) (Generator, error) {
	r.mu.RLock()
	factory, ok := r.factories[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("generator: unknown id %s", id)
	}
	gen, err := factory()
	if err != nil {
		return nil, err
	}
	if err := gen.Info().Validate(); err != nil {
		return nil, err
	}
	return gen, nil
}

// IDs returns a sorted list of registered generator identifiers.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Has reports whether an ID is already registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[id]
	return ok
}
