// Package commit hands built models to a sink, one at a time.
//
// A batch is strictly sequential: the next submission starts only after the previous
// one returned. The first failure aborts the rest of the batch, and cancellation is
// checked before every submission.
package commit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/compartments/pkg/ports"
)

// DefaultLockTTL bounds how long a batch lock survives a crashed committer.
const DefaultLockTTL = 30 * time.Second

// Committer submits batches of built models.
type Committer struct {
	sink    ports.ModelSink
	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
}

// Option configures a Committer.
type Option func(*Committer)

// WithLocker serializes batches of the same family across processes.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(c *Committer) {
		c.locker = locker
		c.lockTTL = ttl
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Committer) {
		c.logger = logger
	}
}

// WithHooks registers submission observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Committer) {
		c.hooks = hooks
	}
}

// New creates a committer over a sink.
func New(sink ports.ModelSink, opts ...Option) *Committer {
	c := &Committer{sink: sink}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.lockTTL <= 0 {
		c.lockTTL = DefaultLockTTL
	}
	return c
}

// Commit submits the models in order and returns the keys that were accepted.
// On failure it returns the keys accepted so far together with a *domain.SubmissionError
// (or the context error when canceled).
func (c *Committer) Commit(ctx context.Context, family string, models []domain.BuiltModel) ([]string, error) {
	if c.locker != nil {
		unlock, err := c.locker.Lock(ctx, "commit:"+family, c.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("lock family %q: %w", family, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				c.logger.Warn("failed to release commit lock", "family", family, "error", err)
			}
		}()
	}

	committed := make([]string, 0, len(models))
	for i := range models {
		if err := ctx.Err(); err != nil {
			c.logger.Info("commit canceled", "family", family, "committed", len(committed), "pending", len(models)-i)
			return committed, err
		}

		model := models[i].Clone()
		start := time.Now()
		err := c.sink.Submit(ctx, model)
		event := &domain.SubmitEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventModelSubmitted},
			Family:    family,
			Model:     model.Key,
			Duration:  time.Since(start),
			Err:       err,
		}

		if err != nil {
			event.Type = domain.EventSubmitFailed
			if c.hooks.OnSubmitFail != nil {
				c.hooks.OnSubmitFail(ctx, event)
			}
			c.logger.Error("submission failed, aborting batch",
				"family", family,
				"model", model.Key,
				"skipped", len(models)-i-1,
				"error", err,
			)
			return committed, &domain.SubmissionError{Model: model.Key, Err: err}
		}

		if c.hooks.OnSubmit != nil {
			c.hooks.OnSubmit(ctx, event)
		}
		c.logger.Info("model committed", "family", family, "model", model.Key)
		committed = append(committed, model.Key)
	}

	return committed, nil
}
