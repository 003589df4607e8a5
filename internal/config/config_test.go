package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/compartments/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "profile.yaml", `
host: models.example.org
port: 8080
token: s3cr3t
sink: redis
lock_ttl: 45s
redis:
  addr: redis:6379
  db: 2
definitions:
  - extra.hcl
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "models.example.org", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "s3cr3t", cfg.Token)
	assert.Equal(t, config.SinkRedis, cfg.Sink)
	assert.Equal(t, 45*time.Second, cfg.LockTTL)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "compartments:model:", cfg.Redis.Prefix, "unset keys keep their default")
	assert.Equal(t, []string{"extra.hcl"}, cfg.Definitions)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "profile.json", `{"host": "127.0.0.1", "port": "5001", "token": "abc"}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 5001, cfg.Port)
	assert.Equal(t, "abc", cfg.Token)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "profile.yaml", "port: 8080\nsink: loam\n")
	t.Setenv("COMPARTMENTS_PORT", "9090")
	t.Setenv("COMPARTMENTS_REDIS_DB", "3")
	t.Setenv("COMPARTMENTS_LOAM_DIR", "/tmp/archive")
	t.Setenv("COMPARTMENTS_DEFINITIONS", "a.hcl,b.hcl")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, config.SinkLoam, cfg.Sink)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "/tmp/archive", cfg.Loam.Dir)
	assert.Equal(t, []string{"a.hcl", "b.hcl"}, cfg.Definitions)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown Sink", "sink: kafka\n"},
		{"Bad Port", "port: 70000\n"},
		{"Not A Number", "port: lots\n"},
		{"Malformed", "host: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, "profile.yaml", tt.content))
			assert.Error(t, err)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit profile must exist")
}
