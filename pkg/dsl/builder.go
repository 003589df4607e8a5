package dsl

import (
	"github.com/aretw0/compartments/pkg/catalog"
	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/compartments/pkg/families"
	"github.com/aretw0/compartments/pkg/variant"
	"go.uber.org/multierr"
)

// Builder manages the construction of a family.
type Builder struct {
	meta   domain.Family
	blocks []*BlockBuilder
	gens   []generator
}

type generator struct {
	name string
	fn   domain.GeneratorFunc
}

// New creates a new family builder.
func New(name string) *Builder {
	return &Builder{meta: domain.Family{Name: name}}
}

// Describe sets the family description.
func (b *Builder) Describe(description string) *Builder {
	b.meta.Description = description
	return b
}

// State declares a compartment.
func (b *Builder) State(id, comment string, tags ...string) *Builder {
	b.meta.States = append(b.meta.States, domain.State{ID: id, Comment: comment, Tag: tags})
	return b
}

// Param declares a parameter.
func (b *Builder) Param(id, comment string) *Builder {
	b.meta.Parameters = append(b.meta.Parameters, domain.Parameter{ID: id, Comment: comment})
	return b
}

// Death sets the rate of the injected death transitions.
func (b *Builder) Death(param string) *Builder {
	b.meta.DeathParameter = param
	return b
}

// Block starts a static block. Calling it twice with the same name fails at Build.
func (b *Builder) Block(name string) *BlockBuilder {
	bb := &BlockBuilder{name: name}
	b.blocks = append(b.blocks, bb)
	return bb
}

// Generator registers a generator block.
func (b *Builder) Generator(name string, fn domain.GeneratorFunc) *Builder {
	b.gens = append(b.gens, generator{name: name, fn: fn})
	return b
}

// Model adds a base definition.
func (b *Builder) Model(key, name, description string, blocks ...string) *Builder {
	b.meta.Definitions = append(b.meta.Definitions, domain.ModelDefinition{
		Key:         key,
		Name:        name,
		Description: description,
		Blocks:      blocks,
	})
	return b
}

// Build registers the blocks and expands the definitions with the variant passes.
// Every registration error is reported, not only the first one.
func (b *Builder) Build(passes ...variant.Rule) (*families.Family, error) {
	cat := catalog.New()
	var errs error
	for _, bb := range b.blocks {
		errs = multierr.Append(errs, cat.Static(bb.name, bb.transitions...))
	}
	for _, g := range b.gens {
		errs = multierr.Append(errs, cat.Generator(g.name, g.fn))
	}
	if errs != nil {
		return nil, errs
	}
	return families.New(b.meta, cat, passes...)
}
