package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/compartments/pkg/domain"
)

// Store implements ports.ModelStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.BuiltModel
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.BuiltModel),
	}
}

// Save persists the model in memory.
func (s *Store) Save(ctx context.Context, key string, model *domain.BuiltModel) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := model.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load retrieves the model from memory.
func (s *Store) Load(ctx context.Context, key string) (*domain.BuiltModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	model, ok := s.data[key]
	if !ok {
		return nil, domain.ErrModelNotFound
	}

	// Copy on read so callers can't mutate the stored model through the pointer
	return model.Clone(), nil
}

// Delete removes the model.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
