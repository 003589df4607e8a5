package dsl_test

import (
	"testing"

	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/compartments/pkg/dsl"
	"github.com/aretw0/compartments/pkg/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measles() *dsl.Builder {
	b := dsl.New("measles").
		Describe("single strain measles").
		State("S", "susceptible").
		State("E", "exposed").
		State("I", "infectious", domain.TagInfectious).
		State("R", "recovered", domain.TagRemainder).
		Param("beta", "contact rate").
		Param("gamma", "recovery rate").
		Param("eps", "incubation rate").
		Param("mu", "death rate").
		Death("mu")

	b.Block("birth").Birth("S", "mu*N").Comment("birth")
	b.Block("infection").Flow("S", "I", "beta*S*I/N").Tag(domain.TagTransmission)
	b.Block("infection_E").Flow("S", "E", "beta*S*I/N").Tag(domain.TagTransmission)
	b.Block("incubation").Flow("E", "I", "eps").Flow("E", "E", "eps").Erlang(3, "eps")
	b.Block("recovery").Flow("I", "R", "gamma")

	b.Model("sir", "SIR", "SIR model", "birth", "infection", "recovery")
	return b
}

func TestBuilder_Family(t *testing.T) {
	f, err := measles().Build()
	require.NoError(t, err)

	assert.Equal(t, "measles", f.Name)
	assert.Equal(t, "single strain measles", f.Description)
	assert.Equal(t, "mu", f.DeathParameter)
	assert.Equal(t, []string{"sir"}, f.Keys())
	assert.True(t, f.Catalog.Has("incubation"))

	m, err := f.Assembler().BuildOne(f.Definitions[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "I", "R"}, domain.StateIDs(m.State))
	// birth, infection, recovery, then deaths of S and I (R is the remainder).
	require.Len(t, m.Model, 5)
	assert.Equal(t, domain.Reservoir, m.Model[0].From)
	assert.Equal(t, []string{domain.TagTransmission}, m.Model[1].Tag)
	assert.Equal(t, "mu", m.Model[4].Rate)
}

func TestBuilder_ErlangAppliesToLastFlow(t *testing.T) {
	b := measles()
	b.Model("seir", "SEIR", "SEIR model", "birth", "infection_E", "incubation", "recovery")
	f, err := b.Build()
	require.NoError(t, err)

	def, ok := f.Definition("seir")
	require.True(t, ok)
	m, err := f.Assembler().BuildOne(def)
	require.NoError(t, err)

	var loops []domain.Transition
	for _, tr := range m.Model {
		if tr.From == tr.To {
			loops = append(loops, tr)
		}
	}
	require.Len(t, loops, 1)
	assert.Equal(t, 3, loops[0].Shape)
	assert.Equal(t, "eps", loops[0].Rescale)
}

func TestBuilder_Passes(t *testing.T) {
	f, err := measles().Build(variant.Rule{
		Name:        "exposed",
		Adapter:     map[string][]string{"infection": {"infection_E", "incubation"}},
		Key:         variant.ReplaceFirst{Old: "i", New: "ei"},
		Title:       variant.ReplaceFirst{Old: "I", New: "EI"},
		Description: variant.ReplaceFirst{Old: "I", New: "EI"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sir", "seir"}, f.Keys())
}

func TestBuilder_DuplicateBlocks(t *testing.T) {
	b := measles()
	b.Block("recovery").Flow("I", "R", "2*gamma")
	b.Block("birth").Birth("S", "N")

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recovery")
	assert.Contains(t, err.Error(), "birth")
}
