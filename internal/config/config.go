// Package config loads the user profile of the command line tools.
//
// The profile is a YAML (or JSON) document, by default ~/.compartments.yaml. Every key
// can be overridden by a COMPARTMENTS_* environment variable, e.g. COMPARTMENTS_PORT or
// COMPARTMENTS_REDIS_ADDR. Values are decoded weakly typed, so "5000" is a valid port
// and "45s" a valid lock ttl.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "COMPARTMENTS_"

// Sink names.
const (
	SinkHTTP   = "http"
	SinkRedis  = "redis"
	SinkLoam   = "loam"
	SinkMemory = "memory"
)

// RedisConfig locates the Redis store.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// LoamConfig locates the loam archive.
type LoamConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Config is the resolved profile.
type Config struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Token    string `mapstructure:"token" yaml:"token"`
	Sink     string `mapstructure:"sink" yaml:"sink"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// LockTTL bounds how long a commit holds the family lock (redis sink only).
	LockTTL time.Duration `mapstructure:"lock_ttl" yaml:"lock_ttl"`

	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`
	Loam  LoamConfig  `mapstructure:"loam" yaml:"loam"`

	// Definitions are HCL files with extra model definitions.
	Definitions []string `mapstructure:"definitions" yaml:"definitions"`
}

// Default returns the profile used when nothing is configured.
func Default() Config {
	return Config{
		Host:     "localhost",
		Port:     5000,
		Sink:     SinkHTTP,
		LogLevel: "info",
		LockTTL:  30 * time.Second,
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "compartments:model:",
		},
		Loam: LoamConfig{Dir: "models"},
	}
}

// DefaultPath returns ~/.compartments.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".compartments.yaml"), nil
}

// envKeys maps environment suffixes to profile keys.
var envKeys = map[string][]string{
	"HOST":           {"host"},
	"PORT":           {"port"},
	"TOKEN":          {"token"},
	"SINK":           {"sink"},
	"LOG_LEVEL":      {"log_level"},
	"LOCK_TTL":       {"lock_ttl"},
	"DEFINITIONS":    {"definitions"},
	"REDIS_ADDR":     {"redis", "addr"},
	"REDIS_PASSWORD": {"redis", "password"},
	"REDIS_DB":       {"redis", "db"},
	"REDIS_PREFIX":   {"redis", "prefix"},
	"REDIS_TTL":      {"redis", "ttl"},
	"LOAM_DIR":       {"loam", "dir"},
}

// Load reads the profile at path, then applies the environment overrides.
// An empty path means DefaultPath, which may be missing; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, fmt.Errorf("failed to locate profile: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case err != nil:
		return cfg, fmt.Errorf("failed to read profile: %w", err)
	default:
		// YAML is a superset of JSON, so ~/.compartments.json parses too.
		raw := map[string]any{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse profile %s: %w", path, err)
		}
		if err := decode(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("invalid profile %s: %w", path, err)
		}
	}

	if err := decode(environ(), &cfg); err != nil {
		return cfg, fmt.Errorf("invalid %s environment: %w", EnvPrefix, err)
	}
	return cfg, cfg.Validate()
}

func environ() map[string]any {
	out := map[string]any{}
	for suffix, path := range envKeys {
		value, ok := os.LookupEnv(EnvPrefix + suffix)
		if !ok {
			continue
		}
		node := out
		for _, key := range path[:len(path)-1] {
			child, ok := node[key].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[key] = child
			}
			node = child
		}
		node[path[len(path)-1]] = value
	}
	return out
}

func decode(input map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// Validate checks the sink name and the port range.
func (c Config) Validate() error {
	switch c.Sink {
	case SinkHTTP, SinkRedis, SinkLoam, SinkMemory:
	default:
		return fmt.Errorf("unknown sink %q (want http, redis, loam or memory)", c.Sink)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}
