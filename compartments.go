package compartments

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/compartments/pkg/assembler"
	"github.com/aretw0/compartments/pkg/commit"
	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/compartments/pkg/families"
	"github.com/aretw0/compartments/pkg/observability"
	"github.com/aretw0/compartments/pkg/ports"
	"go.uber.org/multierr"
)

// Engine is the high-level entry point for the toolkit.
// It owns the family registry and builds and commits their models.
type Engine struct {
	registry *families.Registry
	analyzer ports.RateAnalyzer
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	metrics  *observability.Metrics

	mu    sync.RWMutex
	extra map[string][]domain.ModelDefinition
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithFamilies replaces the built-in one and two strain families.
func WithFamilies(r *families.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithAnalyzer injects a custom rate expression analyzer.
func WithAnalyzer(a ports.RateAnalyzer) Option {
	return func(e *Engine) {
		e.analyzer = a
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMetrics records builds and submissions into the collectors.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New initializes an Engine. Without options it serves the built-in families.
func New(opts ...Option) *Engine {
	e := &Engine{extra: make(map[string][]domain.ModelDefinition)}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = families.Default()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.metrics != nil {
		e.hooks = observability.Combine(e.hooks, e.metrics.Hooks())
	}
	return e
}

// Families returns the family names in registration order.
func (e *Engine) Families() []string {
	return e.registry.Names()
}

// Family returns the named family or domain.ErrFamilyNotFound.
func (e *Engine) Family(name string) (*families.Family, error) {
	return e.registry.Get(name)
}

// Extend appends user definitions (e.g. loaded from HCL files) to a family.
// They are built after the family's own definitions. A key already used by the
// family, or twice in defs, is a *domain.DuplicateKeyError and nothing is added.
func (e *Engine) Extend(family string, defs ...domain.ModelDefinition) error {
	f, err := e.registry.Get(family)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	taken := make(map[string]bool, len(f.Definitions)+len(e.extra[family])+len(defs))
	for _, d := range f.Definitions {
		taken[d.Key] = true
	}
	for _, d := range e.extra[family] {
		taken[d.Key] = true
	}
	for _, d := range defs {
		if taken[d.Key] {
			return fmt.Errorf("extend family %q: %w", family, &domain.DuplicateKeyError{Key: d.Key})
		}
		taken[d.Key] = true
	}

	for _, d := range defs {
		e.extra[family] = append(e.extra[family], d.Clone())
	}
	return nil
}

// Definitions returns the definitions of a family in build order.
func (e *Engine) Definitions(family string) ([]domain.ModelDefinition, error) {
	f, err := e.registry.Get(family)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	extra := e.extra[family]
	e.mu.RUnlock()

	defs := make([]domain.ModelDefinition, 0, len(f.Definitions)+len(extra))
	for _, d := range f.Definitions {
		defs = append(defs, d.Clone())
	}
	for _, d := range extra {
		defs = append(defs, d.Clone())
	}
	return defs, nil
}

func (e *Engine) assembler(f *families.Family) *assembler.Assembler {
	opts := []assembler.Option{
		assembler.WithLogger(e.logger),
		assembler.WithHooks(e.hooks),
	}
	if e.analyzer != nil {
		opts = append(opts, assembler.WithAnalyzer(e.analyzer))
	}
	return f.Assembler(opts...)
}

// Build assembles every model of a family, in definition order.
// The first failing definition aborts the family.
func (e *Engine) Build(ctx context.Context, family string) ([]domain.BuiltModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := e.registry.Get(family)
	if err != nil {
		return nil, err
	}
	defs, err := e.Definitions(family)
	if err != nil {
		return nil, err
	}
	return e.assembler(f).Build(defs)
}

// Model assembles a single definition of a family.
func (e *Engine) Model(ctx context.Context, family, key string) (*domain.BuiltModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := e.registry.Get(family)
	if err != nil {
		return nil, err
	}
	defs, err := e.Definitions(family)
	if err != nil {
		return nil, err
	}
	for _, d := range defs {
		if d.Key == key {
			return e.assembler(f).BuildOne(d)
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", domain.ErrModelNotFound, family, key)
}

// BuildAll builds every family independently. Families that fail are reported in the
// aggregated error; the others are still returned.
func (e *Engine) BuildAll(ctx context.Context) (map[string][]domain.BuiltModel, error) {
	out := make(map[string][]domain.BuiltModel)
	var errs error
	for _, name := range e.registry.Names() {
		models, err := e.Build(ctx, name)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("family %q: %w", name, err))
			continue
		}
		out[name] = models
	}
	return out, errs
}

// Commit submits the models of a family to the sink, one at a time.
// Extra options (e.g. commit.WithLocker) are applied after the engine defaults.
func (e *Engine) Commit(ctx context.Context, sink ports.ModelSink, family string, models []domain.BuiltModel, opts ...commit.Option) ([]string, error) {
	base := []commit.Option{
		commit.WithLogger(e.logger),
		commit.WithHooks(e.hooks),
	}
	return commit.New(sink, append(base, opts...)...).Commit(ctx, family, models)
}
