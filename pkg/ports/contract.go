package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/compartments/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ContractModel returns a small but complete built model for store contract tests.
func ContractModel(key string) *domain.BuiltModel {
	return &domain.BuiltModel{
		Key:         key,
		Name:        "SIR",
		Description: "SIR model",
		Model: []domain.Transition{
			{From: domain.Reservoir, To: "S", Rate: "mu_b*N", Comment: "birth"},
			{From: "S", To: "I", Rate: "r0/N*v*(I + iota)", Tag: []string{domain.TagTransmission}},
			{From: "I", To: "I", Rate: "correct_rate(v)", Shape: 3, Rescale: "v"},
			{From: "S", To: domain.Reservoir, Rate: "mu_b", Comment: domain.CommentDeath},
		},
		State: []domain.State{
			{ID: "S", Comment: "susceptible"},
			{ID: "I", Comment: "infectious", Tag: []string{domain.TagInfectious}},
		},
		Parameter: []domain.Parameter{
			{ID: "mu_b", Comment: "birth rate"},
			{ID: "r0", Comment: "basic reproductive number"},
		},
	}
}

// RunModelStoreContract runs a suite of tests to verify that a ModelStore implementation
// adheres to the defined interface contract.
func RunModelStoreContract(t *testing.T, store ModelStore) {
	ctx := context.Background()
	key := "contract-model-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		model := ContractModel(key)

		err := store.Save(ctx, key, model)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, model, loaded)
	})

	t.Run("Loaded Model Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		loaded.Model[0].Rate = "tampered"
		loaded.State[0].ID = "tampered"

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "mu_b*N", again.Model[0].Rate)
		assert.Equal(t, "S", again.State[0].ID)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		model := ContractModel(key)
		model.Description = "updated"
		require.NoError(t, store.Save(ctx, key, model))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "updated", loaded.Description)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrModelNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, key, ContractModel(key))
		require.NoError(t, err)

		err = store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrModelNotFound, "Load after Delete should return ErrModelNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := key + "-1"
		id2 := key + "-2"
		_ = store.Save(ctx, id1, ContractModel(id1))
		_ = store.Save(ctx, id2, ContractModel(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, id1)
		assert.Contains(t, keys, id2)
	})
}
