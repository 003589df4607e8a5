// Package assembler turns model definitions into built models.
//
// Assembly resolves every block of a definition, derives the minimal set of states the
// transitions touch, injects one death transition per non-remainder state and finally
// derives the parameters referenced by the rates. It is pure: the same catalog and
// definition always produce the same model, and no result shares memory with the
// catalog.
package assembler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/compartments/pkg/ports"
	"github.com/aretw0/compartments/pkg/rate"
)

// Assembler builds the models of one family.
type Assembler struct {
	resolver ports.BlockResolver
	analyzer ports.RateAnalyzer
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	family   string

	states     []domain.State
	stateIndex map[string]int
	active     []string
	params     map[string]domain.Parameter
	death      string
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithAnalyzer replaces the default HCL based rate analyzer.
func WithAnalyzer(a ports.RateAnalyzer) Option {
	return func(as *Assembler) {
		as.analyzer = a
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(as *Assembler) {
		as.logger = logger
	}
}

// WithHooks registers build observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(as *Assembler) {
		as.hooks = hooks
	}
}

// WithFamily labels logs, events and built models with the family name.
func WithFamily(name string) Option {
	return func(as *Assembler) {
		as.family = name
	}
}

// New creates an assembler over a block resolver and the global state and parameter
// catalogs. deathParam is the rate of every injected death transition.
func New(resolver ports.BlockResolver, states []domain.State, params []domain.Parameter, deathParam string, opts ...Option) *Assembler {
	a := &Assembler{
		resolver:   resolver,
		death:      deathParam,
		states:     make([]domain.State, len(states)),
		stateIndex: make(map[string]int, len(states)),
		params:     make(map[string]domain.Parameter, len(params)),
	}
	for i, s := range states {
		a.states[i] = s.Clone()
		a.stateIndex[s.ID] = i
	}
	a.active = domain.StateIDs(a.states)
	for _, p := range params {
		a.params[p.ID] = p
	}

	for _, opt := range opts {
		opt(a)
	}
	if a.analyzer == nil {
		a.analyzer = rate.NewAnalyzer()
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if a.family != "" {
		a.logger = a.logger.With("family", a.family)
	}
	return a
}

// BuildOne assembles a single definition. No partial model is returned on error.
func (a *Assembler) BuildOne(def domain.ModelDefinition) (*domain.BuiltModel, error) {
	model, err := a.build(def)
	ctx := context.Background()
	if err != nil {
		a.logger.Debug("model build failed", "model", def.Key, "error", err)
		if a.hooks.OnBuildError != nil {
			a.hooks.OnBuildError(ctx, a.event(domain.EventBuildFailed, def.Key, 0, err))
		}
		return nil, err
	}

	a.logger.Debug("model built", "model", def.Key, "transitions", len(model.Model), "states", len(model.State))
	if a.hooks.OnModelBuilt != nil {
		a.hooks.OnModelBuilt(ctx, a.event(domain.EventModelBuilt, def.Key, len(model.Model), nil))
	}
	return model, nil
}

func (a *Assembler) build(def domain.ModelDefinition) (*domain.BuiltModel, error) {
	// 1. Resolve blocks, in definition order.
	transitions := make([]domain.Transition, 0)
	for _, name := range def.Blocks {
		ts, err := a.resolver.Resolve(name, a.active)
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, domain.CloneTransitions(ts)...)
	}

	// 2. Derive states: every source first, then every destination.
	endpoints := make([]string, 0, 2*len(transitions))
	for _, t := range transitions {
		endpoints = append(endpoints, t.From)
	}
	for _, t := range transitions {
		endpoints = append(endpoints, t.To)
	}

	states := make([]domain.State, 0)
	seen := make(map[string]bool)
	for _, id := range endpoints {
		if id == domain.Reservoir || seen[id] {
			continue
		}
		idx, ok := a.stateIndex[id]
		if !ok {
			return nil, &domain.UndeclaredStateError{Model: def.Key, State: id}
		}
		seen[id] = true
		states = append(states, a.states[idx].Clone())
	}

	// 3. Inject deaths.
	for _, s := range states {
		if s.HasTag(domain.TagRemainder) {
			continue
		}
		transitions = append(transitions, domain.Transition{
			From:    s.ID,
			To:      domain.Reservoir,
			Rate:    a.death,
			Comment: domain.CommentDeath,
		})
	}

	// 4. Derive parameters, deaths included.
	params := make([]domain.Parameter, 0)
	used := make(map[string]bool)
	for _, t := range transitions {
		ids, err := a.analyzer.Identifiers(t.Rate)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			p, declared := a.params[id]
			if !declared || used[id] {
				continue
			}
			used[id] = true
			params = append(params, p)
		}
	}

	return &domain.BuiltModel{
		Family:      a.family,
		Key:         def.Key,
		Name:        def.Name,
		Description: def.Description,
		Model:       transitions,
		State:       states,
		Parameter:   params,
	}, nil
}

// Build assembles every definition in order. The first failure aborts the build.
func (a *Assembler) Build(defs []domain.ModelDefinition) ([]domain.BuiltModel, error) {
	models := make([]domain.BuiltModel, 0, len(defs))
	keys := make(map[string]bool, len(defs))
	for _, def := range defs {
		if keys[def.Key] {
			return nil, &domain.DuplicateKeyError{Key: def.Key}
		}
		keys[def.Key] = true

		m, err := a.BuildOne(def)
		if err != nil {
			return nil, fmt.Errorf("build model %q: %w", def.Key, err)
		}
		models = append(models, *m)
	}

	a.logger.Info("family built", "models", len(models))
	return models, nil
}

// Index keys built models by their Key.
func Index(models []domain.BuiltModel) map[string]domain.BuiltModel {
	idx := make(map[string]domain.BuiltModel, len(models))
	for _, m := range models {
		idx[m.Key] = m
	}
	return idx
}

func (a *Assembler) event(typ domain.EventType, key string, n int, err error) *domain.BuildEvent {
	return &domain.BuildEvent{
		EventBase:   domain.EventBase{Timestamp: time.Now(), Type: typ},
		Family:      a.family,
		Model:       key,
		Transitions: n,
		Err:         err,
	}
}
