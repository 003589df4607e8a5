package variant_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/compartments/pkg/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exposed = variant.Rule{
	Name: "exposed",
	Adapter: map[string][]string{
		"infection":   {"infection_E", "recovery_E"},
		"reinfection": {"reinfection_E"},
	},
	Key:         variant.ReplaceFirst{Old: "i", New: "ei"},
	Title:       variant.ReplaceFirst{Old: "I", New: "EI"},
	Description: variant.ReplaceFirst{Old: "I", New: "EI"},
}

var noCrossImmunity = variant.Rule{
	Name:        "no_cross_immunity",
	Adapter:     map[string][]string{"infection": {"infection_no_CI"}},
	Key:         variant.AppendSuffix{Suffix: "_no_CI"},
	Title:       variant.AppendSuffix{Suffix: "_no_CI"},
	Description: variant.AppendSuffix{Suffix: " without cross immunity"},
	Skip:        func(key string) bool { return strings.Contains(key, "sbri") },
}

func TestRule_Apply(t *testing.T) {
	def := domain.ModelDefinition{
		Key:         "siqri",
		Name:        "SIQRI",
		Description: "SIQRI model",
		Blocks:      []string{"birth", "infection", "recovery_Q", "waning_Q", "reinfection"},
	}

	got, err := exposed.Apply(def)
	require.NoError(t, err)

	assert.Equal(t, "seiqri", got.Key)
	assert.Equal(t, "SEIQRI", got.Name, "only the first marker is replaced")
	assert.Equal(t, "SEIQRI model", got.Description)
	assert.Equal(t, []string{"birth", "infection_E", "recovery_E", "recovery_Q", "waning_Q", "reinfection_E"}, got.Blocks)
	assert.Equal(t, "siqri", def.Key, "source definition must not change")
}

func TestRule_ApplyMissingMarker(t *testing.T) {
	_, err := exposed.Apply(domain.ModelDefinition{Key: "srs", Name: "SRS", Description: "SRS"})
	require.Error(t, err)

	var renameErr *domain.RenameError
	require.True(t, errors.As(err, &renameErr))
	assert.Equal(t, "exposed", renameErr.Rule)
	assert.Equal(t, "key", renameErr.Field)
	assert.Equal(t, "i", renameErr.Marker)
}

func TestGenerate_OrderedPasses(t *testing.T) {
	base := []domain.ModelDefinition{
		{Key: "sir", Name: "SIR_HBRS", Description: "SIR History based", Blocks: []string{"birth", "infection", "recovery"}},
		{Key: "sir_sbri", Name: "SIR_SBRI", Description: "SIR Status based", Blocks: []string{"birth", "infection_sbri", "recovery"}},
	}

	defs, err := variant.Generate(base, noCrossImmunity, exposed)
	require.NoError(t, err)

	keys := make([]string, len(defs))
	for i, d := range defs {
		keys[i] = d.Key
	}
	assert.Equal(t, []string{"sir", "sir_sbri", "sir_no_CI", "seir", "seir_sbri", "seir_no_CI"}, keys)

	byKey := make(map[string]domain.ModelDefinition)
	for _, d := range defs {
		byKey[d.Key] = d
	}

	composed := byKey["seir_no_CI"]
	assert.Equal(t, "SEIR_HBRS_no_CI", composed.Name)
	assert.Equal(t, "SEIR History based without cross immunity", composed.Description)
	// infection was replaced by the first pass, so the exposed adapter no longer matches it.
	assert.Equal(t, []string{"birth", "infection_no_CI", "recovery"}, composed.Blocks)
}

func TestGenerate_DuplicateKey(t *testing.T) {
	base := []domain.ModelDefinition{
		{Key: "sir", Name: "SIR", Description: "SIR model"},
		{Key: "seir", Name: "SEIR", Description: "SEIR model"},
	}

	_, err := variant.Generate(base, exposed)
	var dup *domain.DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "seir", dup.Key)

	_, err = variant.Generate([]domain.ModelDefinition{base[0], base[0]})
	assert.True(t, errors.As(err, &dup))
}

func TestGenerate_NoPasses(t *testing.T) {
	base := []domain.ModelDefinition{{Key: "sir", Blocks: []string{"birth"}}}

	defs, err := variant.Generate(base)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	defs[0].Blocks[0] = "changed"
	assert.Equal(t, "birth", base[0].Blocks[0], "result must not alias the base family")
}
