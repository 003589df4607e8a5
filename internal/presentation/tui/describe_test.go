package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/compartments/internal/presentation/tui"
	"github.com/aretw0/compartments/pkg/ports"
	"github.com/aretw0/compartments/pkg/rate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	md := tui.Describe(ports.ContractModel("sir"), rate.NewAnalyzer())

	assert.Contains(t, md, "# SIR (`sir`)")
	assert.Contains(t, md, "| I | infectious | infectious |")
	assert.Contains(t, md, "| r0 | basic reproductive number |")
	assert.Contains(t, md, "| S | U | `mu_b` | death |")
	assert.Contains(t, md, "(Erlang 3, rescale v)")
	assert.Contains(t, md, "Rates call: correct_rate.")
}

func TestWriteMarkdown_NotATerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tui.WriteMarkdown(&buf, "# Title\n"))
	assert.Equal(t, "# Title\n", buf.String())
	assert.False(t, tui.IsTerminal(&buf))
}
