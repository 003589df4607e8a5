package variant_test

import (
	"testing"

	"github.com/aretw0/compartments/pkg/variant"
	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name    string
		adapter map[string][]string
		blocks  []string
		want    []string
	}{
		{
			name:    "Insert Exposed Stage",
			adapter: map[string][]string{"infection": {"infection_E", "recovery_E"}},
			blocks:  []string{"birth", "infection", "recovery"},
			want:    []string{"birth", "infection_E", "recovery_E", "recovery"},
		},
		{
			name:    "One To One",
			adapter: map[string][]string{"infection": {"infection_no_CI"}, "reinfection": {"reinfection_no_CI"}},
			blocks:  []string{"birth", "infection", "recovery", "reinfection"},
			want:    []string{"birth", "infection_no_CI", "recovery", "reinfection_no_CI"},
		},
		{
			name:    "Keep And Extend",
			adapter: map[string][]string{"waning_immunity": {"waning_immunity", "waning_immunity_E"}},
			blocks:  []string{"waning_immunity", "birth"},
			want:    []string{"waning_immunity", "waning_immunity_E", "birth"},
		},
		{
			name:    "Repeated Name",
			adapter: map[string][]string{"a": {"x", "y"}},
			blocks:  []string{"a", "b", "a"},
			want:    []string{"x", "y", "b", "x", "y"},
		},
		{
			name:    "Nil Adapter",
			adapter: nil,
			blocks:  []string{"birth", "infection"},
			want:    []string{"birth", "infection"},
		},
		{
			name:    "Empty Replacement Removes",
			adapter: map[string][]string{"infection": {}},
			blocks:  []string{"birth", "infection"},
			want:    []string{"birth"},
		},
		{
			name:    "Empty Blocks",
			adapter: map[string][]string{"infection": {"infection_E"}},
			blocks:  nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, variant.Substitute(tt.adapter, tt.blocks))
		})
	}
}

func TestSubstitute_OrderPreservingAndExpansive(t *testing.T) {
	adapter := map[string][]string{
		"infection":   {"infection_E", "recovery_E"},
		"reinfection": {"reinfection_E"},
	}
	blocks := []string{"birth", "infection", "recovery_Q", "waning_Q", "reinfection", "boosting_Q_with_reinfection"}
	original := append([]string(nil), blocks...)

	got := variant.Substitute(adapter, blocks)

	assert.Equal(t, original, blocks, "input must not be mutated")
	assert.GreaterOrEqual(t, len(got), len(blocks))

	// Unmapped names keep their relative order.
	var unmapped []string
	for _, b := range got {
		switch b {
		case "birth", "recovery_Q", "waning_Q", "boosting_Q_with_reinfection":
			unmapped = append(unmapped, b)
		}
	}
	assert.Equal(t, []string{"birth", "recovery_Q", "waning_Q", "boosting_Q_with_reinfection"}, unmapped)
}
