package ports

import (
	"context"
	"fmt"

	"github.com/aretw0/compartments/pkg/domain"
)

// ModelSink receives built models. Callers submit one model at a time and wait for
// the result before submitting the next one.
type ModelSink interface {
	Submit(ctx context.Context, model *domain.BuiltModel) error
}

// SinkFunc adapts a function to the ModelSink interface.
type SinkFunc func(ctx context.Context, model *domain.BuiltModel) error

// Submit calls f(ctx, model).
func (f SinkFunc) Submit(ctx context.Context, model *domain.BuiltModel) error {
	return f(ctx, model)
}

// StoreSink submits models by saving them into a ModelStore under their qualified
// key (family/key), so families sharing model keys do not overwrite each other.
type StoreSink struct {
	Store ModelStore
}

// NewStoreSink wraps a store as a sink.
func NewStoreSink(store ModelStore) *StoreSink {
	return &StoreSink{Store: store}
}

// Submit saves the model.
func (s *StoreSink) Submit(ctx context.Context, model *domain.BuiltModel) error {
	if model == nil || model.Key == "" {
		return fmt.Errorf("model key is required")
	}
	return s.Store.Save(ctx, model.QualifiedKey(), model)
}
