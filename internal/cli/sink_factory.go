package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/compartments/internal/config"
	httpAdapter "github.com/aretw0/compartments/pkg/adapters/http"
	loamAdapter "github.com/aretw0/compartments/pkg/adapters/loam"
	"github.com/aretw0/compartments/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/compartments/pkg/adapters/redis"
	"github.com/aretw0/compartments/pkg/commit"
	"github.com/aretw0/compartments/pkg/ports"
)

// Target is a configured submission destination.
type Target struct {
	Sink ports.ModelSink

	// Options holds the commit options the sink needs, e.g. the redis family lock.
	Options []commit.Option

	// Close releases connections. Never nil.
	Close func() error
}

// NewSink builds the sink named by cfg.Sink.
func NewSink(cfg config.Config, logger *slog.Logger) (*Target, error) {
	noop := func() error { return nil }

	switch cfg.Sink {
	case config.SinkHTTP:
		logger.Debug("submitting over http", "host", cfg.Host, "port", cfg.Port)
		return &Target{Sink: httpAdapter.NewClient(cfg.Host, cfg.Port, cfg.Token), Close: noop}, nil

	case config.SinkRedis:
		store := newRedisStore(cfg)
		locker := redisAdapter.NewLocker(store.Client(), cfg.Redis.Prefix)
		return &Target{
			Sink:    ports.NewStoreSink(store),
			Options: []commit.Option{commit.WithLocker(locker, cfg.LockTTL)},
			Close:   store.Client().Close,
		}, nil

	case config.SinkLoam:
		archive, err := loamAdapter.Open(cfg.Loam.Dir)
		if err != nil {
			return nil, err
		}
		return &Target{Sink: archive, Close: noop}, nil

	case config.SinkMemory:
		return &Target{Sink: memory.NewSink(), Close: noop}, nil
	}
	return nil, fmt.Errorf("unknown sink %q", cfg.Sink)
}

// NewStore builds the store served by the HTTP API: redis when the profile selects
// the redis sink, memory otherwise.
func NewStore(cfg config.Config) (ports.ModelStore, func() error) {
	if cfg.Sink == config.SinkRedis {
		store := newRedisStore(cfg)
		return store, store.Client().Close
	}
	return memory.NewStore(), func() error { return nil }
}

func newRedisStore(cfg config.Config) *redisAdapter.Store {
	opts := []redisAdapter.Option{redisAdapter.WithPrefix(cfg.Redis.Prefix)}
	if cfg.Redis.TTL > 0 {
		opts = append(opts, redisAdapter.WithTTL(cfg.Redis.TTL))
	}
	return redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
}
