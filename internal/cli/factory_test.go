package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/compartments/internal/cli"
	"github.com/aretw0/compartments/internal/config"
	"github.com/aretw0/compartments/internal/logging"
	httpAdapter "github.com/aretw0/compartments/pkg/adapters/http"
	loamAdapter "github.com/aretw0/compartments/pkg/adapters/loam"
	"github.com/aretw0/compartments/pkg/adapters/memory"
	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/compartments/pkg/families"
	"github.com/aretw0/compartments/pkg/observability"
	"github.com/aretw0/compartments/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_UserDefinitions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
model "si" {
  family = "one_strain"
  blocks = ["birth", "infection"]
}
`), 0644))

	cfg := config.Default()
	cfg.Definitions = []string{path}

	engine, err := cli.NewEngine(cfg, logging.NewNop(), observability.NewMetrics())
	require.NoError(t, err)

	m, err := engine.Model(context.Background(), families.OneStrainName, "si")
	require.NoError(t, err)
	assert.Equal(t, "si", m.Name)
}

func TestNewEngine_UnknownFamily(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
model "si" {
  family = "zika"
  blocks = ["birth"]
}
`), 0644))

	cfg := config.Default()
	cfg.Definitions = []string{path}

	_, err := cli.NewEngine(cfg, logging.NewNop(), nil)
	assert.ErrorIs(t, err, domain.ErrFamilyNotFound)
}

func TestNewSink(t *testing.T) {
	t.Run("HTTP", func(t *testing.T) {
		cfg := config.Default()
		target, err := cli.NewSink(cfg, logging.NewNop())
		require.NoError(t, err)
		client, ok := target.Sink.(*httpAdapter.Client)
		require.True(t, ok)
		assert.Equal(t, "http://localhost:5000", client.BaseURL)
		assert.Empty(t, target.Options)
	})

	t.Run("Memory", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sink = config.SinkMemory
		target, err := cli.NewSink(cfg, logging.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &memory.Sink{}, target.Sink)
	})

	t.Run("Loam", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sink = config.SinkLoam
		cfg.Loam.Dir = t.TempDir()
		target, err := cli.NewSink(cfg, logging.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &loamAdapter.Archive{}, target.Sink)
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.Default()
		cfg.Sink = config.SinkRedis
		cfg.Redis.Addr = mr.Addr()

		target, err := cli.NewSink(cfg, logging.NewNop())
		require.NoError(t, err)
		defer target.Close()
		assert.Len(t, target.Options, 1)

		model := ports.ContractModel("sir")
		model.Family = "one_strain"
		require.NoError(t, target.Sink.Submit(context.Background(), model))
		assert.True(t, mr.Exists("compartments:model:m:one_strain/sir"))
	})

	t.Run("Unknown", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sink = "kafka"
		_, err := cli.NewSink(cfg, logging.NewNop())
		assert.Error(t, err)
	})
}

func TestNewStore(t *testing.T) {
	store, closeFn := cli.NewStore(config.Default())
	defer closeFn()
	assert.IsType(t, &memory.Store{}, store)
}
