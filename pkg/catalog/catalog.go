package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/compartments/pkg/domain"
)

// Catalog manages the available blocks.
type Catalog struct {
	mu     sync.RWMutex
	blocks map[string]domain.Block
}

// New creates a new empty catalog.
func New() *Catalog {
	return &Catalog{
		blocks: make(map[string]domain.Block),
	}
}

// Register adds a block to the catalog.
// Blocks are immutable once registered: registering a name twice is an error.
func (c *Catalog) Register(name string, block domain.Block) error {
	if name == "" {
		return fmt.Errorf("block name is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.blocks[name]; exists {
		return fmt.Errorf("block %q already registered", name)
	}
	c.blocks[name] = block
	return nil
}

// MustRegister is like Register but panics on error.
// It is meant for package-level catalog tables.
func (c *Catalog) MustRegister(name string, block domain.Block) {
	if err := c.Register(name, block); err != nil {
		panic(err)
	}
}

// Static registers a static block made of the given transitions.
func (c *Catalog) Static(name string, transitions ...domain.Transition) error {
	return c.Register(name, domain.StaticBlock(transitions...))
}

// Generator registers a generator block.
func (c *Catalog) Generator(name string, fn domain.GeneratorFunc) error {
	return c.Register(name, domain.GeneratorBlock(fn))
}

// Derive registers name as a copy of the block src with rewrite applied to every
// transition. A static source yields a static block, a generator source a generator
// that rewrites the output of src.
func (c *Catalog) Derive(name, src string, rewrite func(*domain.Transition)) error {
	source, ok := c.lookup(src)
	if !ok {
		return &domain.UnknownBlockError{Block: src}
	}

	switch source.Kind() {
	case domain.BlockStatic:
		ts := source.Transitions()
		for i := range ts {
			rewrite(&ts[i])
		}
		return c.Register(name, domain.StaticBlock(ts...))
	case domain.BlockGenerator:
		return c.Register(name, domain.GeneratorBlock(func(active []string, stages int) []domain.Transition {
			ts := source.Generate(active, stages)
			for i := range ts {
				rewrite(&ts[i])
			}
			return ts
		}))
	default:
		return fmt.Errorf("block %q has unsupported kind %s", src, source.Kind())
	}
}

// Has reports whether name is registered (the stage count grammar is not applied).
func (c *Catalog) Has(name string) bool {
	_, ok := c.lookup(name)
	return ok
}

// Names returns the registered block names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.blocks))
	for name := range c.blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kind returns the kind of a registered block.
func (c *Catalog) Kind(name string) (domain.BlockKind, bool) {
	b, ok := c.lookup(name)
	if !ok {
		return 0, false
	}
	return b.Kind(), true
}

// Resolve returns the transitions of the named block.
// The result never shares memory with the catalog.
func (c *Catalog) Resolve(name string, active []string) ([]domain.Transition, error) {
	if block, ok := c.lookup(name); ok {
		return resolveBlock(block, active, 0), nil
	}

	base, stages, ok := ParseStageName(name)
	if !ok {
		return nil, &domain.UnknownBlockError{Block: name}
	}

	block, found := c.lookup(base)
	if !found {
		return nil, &domain.UnknownBlockError{Block: name, Base: base}
	}
	if block.Kind() != domain.BlockGenerator {
		return nil, &domain.StageCountError{
			Block:  name,
			Reason: fmt.Sprintf("stage count %d given for static block %q", stages, base),
		}
	}

	return resolveBlock(block, active, stages), nil
}

// ResolveAll resolves every name in order and concatenates the transitions.
func (c *Catalog) ResolveAll(names []string, active []string) ([]domain.Transition, error) {
	var out []domain.Transition
	for _, name := range names {
		ts, err := c.Resolve(name, active)
		if err != nil {
			return nil, err
		}
		out = append(out, ts...)
	}
	return out, nil
}

func (c *Catalog) lookup(name string) (domain.Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.blocks[name]
	return b, ok
}

func resolveBlock(block domain.Block, active []string, stages int) []domain.Transition {
	switch block.Kind() {
	case domain.BlockGenerator:
		return block.Generate(active, stages)
	default:
		return block.Transitions()
	}
}

// ParseStageName splits a reference of the form base_stages.
// ok is false when name does not follow the grammar.
func ParseStageName(name string) (base string, stages int, ok bool) {
	i := strings.LastIndexByte(name, '_')
	if i <= 0 || i == len(name)-1 {
		return "", 0, false
	}

	digits := name[i+1:]
	if digits[0] < '1' || digits[0] > '9' {
		return "", 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, false
	}
	return name[:i], n, true
}
