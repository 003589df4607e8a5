package memory

import (
	"context"
	"sync"

	"github.com/aretw0/compartments/pkg/domain"
)

// Sink implements ports.ModelSink by recording every submitted model in order.
// It backs dry runs and tests.
type Sink struct {
	mu     sync.Mutex
	models []*domain.BuiltModel
}

// NewSink creates an empty recording sink.
func NewSink() *Sink {
	return &Sink{}
}

// Submit records a copy of the model.
func (s *Sink) Submit(ctx context.Context, model *domain.BuiltModel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append(s.models, model.Clone())
	return nil
}

// Models returns copies of the recorded models, in submission order.
func (s *Sink) Models() []*domain.BuiltModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.BuiltModel, len(s.models))
	for i, m := range s.models {
		out[i] = m.Clone()
	}
	return out
}

// Keys returns the recorded model keys, in submission order.
func (s *Sink) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, len(s.models))
	for i, m := range s.models {
		keys[i] = m.Key
	}
	return keys
}
