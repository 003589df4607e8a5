package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/compartments/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	profile := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(profile, []byte("sink: memory\nlog_level: error\n"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", profile}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_Version(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "compartments version "))
}

func TestCLI_Build(t *testing.T) {
	out, err := run(t, "build", "--family", "two_strain", "--format", "json", "sir", "seir_no_CI")
	require.NoError(t, err)

	var models []domain.BuiltModel
	require.NoError(t, json.Unmarshal([]byte(out), &models))
	require.Len(t, models, 2)
	assert.Equal(t, "sir", models[0].Key)
	assert.Equal(t, "seir_no_CI", models[1].Key)
}

func TestCLI_Graph(t *testing.T) {
	out, err := run(t, "graph", "--family", "one_strain", "sirs")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR"))
}

func TestCLI_Commit(t *testing.T) {
	out, err := run(t, "commit", "--family", "one_strain", "sir", "seir")
	require.NoError(t, err)
	assert.Equal(t, "sir\nseir\n", out)
}

func TestCLI_UnknownModel(t *testing.T) {
	_, err := run(t, "graph", "--family", "one_strain", "zika")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestCLI_Validate(t *testing.T) {
	out, err := run(t, "validate", "--family", "one_strain")
	require.NoError(t, err)
	assert.Contains(t, out, "one_strain: 10 models ok")
}
