package ports

import (
	"context"

	"github.com/aretw0/compartments/pkg/domain"
)

// ModelStore defines the interface for persisting built models.
type ModelStore interface {
	// Save persists the model under the given key, replacing any previous version.
	Save(ctx context.Context, key string, model *domain.BuiltModel) error

	// Load retrieves the model for a given key.
	// Returns domain.ErrModelNotFound if the key does not exist.
	Load(ctx context.Context, key string) (*domain.BuiltModel, error)

	// Delete removes the model for a given key.
	Delete(ctx context.Context, key string) error

	// List returns the keys of the stored models.
	List(ctx context.Context) ([]string, error)
}
