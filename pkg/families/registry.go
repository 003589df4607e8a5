package families

import (
	"fmt"
	"sync"

	"github.com/aretw0/compartments/pkg/domain"
)

// Registry holds families in registration order.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	families map[string]*Family
}

// NewRegistry creates a registry holding the given families.
func NewRegistry(fams ...*Family) (*Registry, error) {
	r := &Registry{families: make(map[string]*Family)}
	for _, f := range fams {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default returns a registry with the built-in families.
func Default() *Registry {
	r, err := NewRegistry(OneStrain(), TwoStrain())
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds a family. Names must be unique.
func (r *Registry) Register(f *Family) error {
	if f == nil || f.Name == "" {
		return fmt.Errorf("family name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.families[f.Name]; exists {
		return fmt.Errorf("family %q already registered", f.Name)
	}
	r.families[f.Name] = f
	r.order = append(r.order, f.Name)
	return nil
}

// Get returns the named family or domain.ErrFamilyNotFound.
func (r *Registry) Get(name string) (*Family, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.families[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFamilyNotFound, name)
	}
	return f, nil
}

// Names returns the family names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// All returns the families in registration order.
func (r *Registry) All() []*Family {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Family, len(r.order))
	for i, name := range r.order {
		out[i] = r.families[name]
	}
	return out
}
