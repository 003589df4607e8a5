package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/compartments/pkg/catalog"
	"github.com/aretw0/compartments/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selfLoops(prefix string) domain.GeneratorFunc {
	return func(active []string, stages int) []domain.Transition {
		var out []domain.Transition
		for _, s := range active {
			if strings.HasPrefix(s, prefix) {
				out = append(out, domain.Transition{From: s, To: s, Rate: "correct_rate(v)", Shape: stages, Rescale: "v"})
			}
		}
		return out
	}
}

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	require.NoError(t, c.Static("birth", domain.Transition{From: domain.Reservoir, To: "S", Rate: "mu_b*N", Comment: "birth"}))
	require.NoError(t, c.Static("infection", domain.Transition{From: "S", To: "I", Rate: "r0/N*v*I", Tag: []string{domain.TagTransmission}}))
	require.NoError(t, c.Generator("erlang_I", selfLoops("I")))
	return c
}

func TestCatalog_ResolveStatic(t *testing.T) {
	c := newCatalog(t)

	ts, err := c.Resolve("birth", []string{"S", "I", "R"})
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, domain.Reservoir, ts[0].From)
	assert.Equal(t, "S", ts[0].To)

	// Mutating the result must not leak into the catalog.
	ts[0].To = "X"
	again, err := c.Resolve("birth", nil)
	require.NoError(t, err)
	assert.Equal(t, "S", again[0].To)
}

func TestCatalog_ResolveGenerator(t *testing.T) {
	c := newCatalog(t)
	active := []string{"S", "I", "IR", "R"}

	t.Run("Without Stage Count", func(t *testing.T) {
		ts, err := c.Resolve("erlang_I", active)
		require.NoError(t, err)
		require.Len(t, ts, 2)
		assert.Equal(t, 0, ts[0].Shape)
	})

	t.Run("With Stage Count", func(t *testing.T) {
		ts, err := c.Resolve("erlang_I_3", active)
		require.NoError(t, err)
		require.Len(t, ts, 2)
		for _, tr := range ts {
			assert.Equal(t, 3, tr.Shape)
			assert.Equal(t, "v", tr.Rescale)
		}
		assert.Equal(t, []string{"S", "I", "IR", "R"}, active, "active states must not be mutated")
	})
}

func TestCatalog_ResolveIsDeterministic(t *testing.T) {
	c := newCatalog(t)
	active := []string{"S", "I", "R"}

	for _, name := range c.Names() {
		first, err := c.Resolve(name, active)
		require.NoError(t, err)
		second, err := c.Resolve(name, active)
		require.NoError(t, err)
		assert.Equal(t, first, second, "block %s", name)
	}
}

func TestCatalog_ResolveErrors(t *testing.T) {
	c := newCatalog(t)

	tests := []struct {
		name     string
		block    string
		wantBase string
		stage    bool
	}{
		{name: "Unknown Name", block: "vaccination"},
		{name: "Unknown Base", block: "erlang_E_2", wantBase: "erlang_E"},
		{name: "Zero Stage Count Is Not Grammar", block: "erlang_I_0"},
		{name: "Stage Count On Static Block", block: "infection_2", stage: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Resolve(tt.block, nil)
			require.Error(t, err)

			if tt.stage {
				var stageErr *domain.StageCountError
				assert.True(t, errors.As(err, &stageErr))
				return
			}

			var unknown *domain.UnknownBlockError
			require.True(t, errors.As(err, &unknown))
			assert.Equal(t, tt.block, unknown.Block)
			assert.Equal(t, tt.wantBase, unknown.Base)
		})
	}
}

func TestCatalog_RegisterTwice(t *testing.T) {
	c := newCatalog(t)
	err := c.Static("birth")
	assert.Error(t, err)
	assert.Panics(t, func() { c.MustRegister("birth", domain.StaticBlock()) })
}

func TestCatalog_Derive(t *testing.T) {
	c := newCatalog(t)
	toExposed := func(tr *domain.Transition) {
		tr.To = strings.ReplaceAll(tr.To, "I", "E")
	}

	require.NoError(t, c.Derive("infection_E", "infection", toExposed))
	require.NoError(t, c.Derive("erlang_IE", "erlang_I", toExposed))

	ts, err := c.Resolve("infection_E", nil)
	require.NoError(t, err)
	assert.Equal(t, "E", ts[0].To)

	orig, err := c.Resolve("infection", nil)
	require.NoError(t, err)
	assert.Equal(t, "I", orig[0].To, "source block must be untouched")

	kind, ok := c.Kind("erlang_IE")
	require.True(t, ok)
	assert.Equal(t, domain.BlockGenerator, kind)

	gen, err := c.Resolve("erlang_IE_2", []string{"I"})
	require.NoError(t, err)
	require.Len(t, gen, 1)
	assert.Equal(t, "I", gen[0].From)
	assert.Equal(t, "E", gen[0].To)

	var unknown *domain.UnknownBlockError
	assert.True(t, errors.As(c.Derive("x", "missing", toExposed), &unknown))
}

func TestParseStageName(t *testing.T) {
	tests := []struct {
		in     string
		base   string
		stages int
		ok     bool
	}{
		{"erlang_I_3", "erlang_I", 3, true},
		{"erlang_E_12", "erlang_E", 12, true},
		{"erlang_I", "", 0, false},
		{"erlang_I_", "", 0, false},
		{"_3", "", 0, false},
		{"erlang_I_03", "", 0, false},
		{"erlang_I_-3", "", 0, false},
		{"erlang_I_3a", "", 0, false},
	}

	for _, tt := range tests {
		base, stages, ok := catalog.ParseStageName(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.base, base, tt.in)
		assert.Equal(t, tt.stages, stages, tt.in)
	}
}
