package families

import (
	"fmt"
	"strings"

	"github.com/aretw0/compartments/pkg/assembler"
	"github.com/aretw0/compartments/pkg/catalog"
	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/compartments/pkg/variant"
)

// Family is a domain family together with its block catalog.
type Family struct {
	domain.Family
	Catalog *catalog.Catalog

	// Passes are the variant rules that produced the derived definitions, in order.
	Passes []variant.Rule
}

// New assembles a family: the base definitions are expanded by the passes, in order.
func New(meta domain.Family, cat *catalog.Catalog, passes ...variant.Rule) (*Family, error) {
	defs, err := variant.Generate(meta.Definitions, passes...)
	if err != nil {
		return nil, fmt.Errorf("family %q: %w", meta.Name, err)
	}
	meta.Definitions = defs
	return &Family{Family: meta, Catalog: cat, Passes: passes}, nil
}

func mustNew(meta domain.Family, cat *catalog.Catalog, passes ...variant.Rule) *Family {
	f, err := New(meta, cat, passes...)
	if err != nil {
		panic(err)
	}
	return f
}

// Assembler returns an assembler bound to the family catalogs.
func (f *Family) Assembler(opts ...assembler.Option) *assembler.Assembler {
	opts = append([]assembler.Option{assembler.WithFamily(f.Name)}, opts...)
	return assembler.New(f.Catalog, f.States, f.Parameters, f.DeathParameter, opts...)
}

// Definition looks up a model definition by key.
func (f *Family) Definition(key string) (domain.ModelDefinition, bool) {
	for _, d := range f.Definitions {
		if d.Key == key {
			return d.Clone(), true
		}
	}
	return domain.ModelDefinition{}, false
}

// Keys returns the definition keys in generation order.
func (f *Family) Keys() []string {
	keys := make([]string, len(f.Definitions))
	for i, d := range f.Definitions {
		keys[i] = d.Key
	}
	return keys
}

// exposedTo moves a transition's destination into the matching exposed compartment.
func exposedTo(t *domain.Transition) {
	t.To = strings.ReplaceAll(t.To, "I", "E")
}

func deriveExposed(cat *catalog.Catalog, names ...string) {
	for _, name := range names {
		if err := cat.Derive(name+"_E", name, exposedTo); err != nil {
			panic(err)
		}
	}
}

func exposedRule(adapter map[string][]string) variant.Rule {
	return variant.Rule{
		Name:        "exposed",
		Adapter:     adapter,
		Key:         variant.ReplaceFirst{Old: "i", New: "ei"},
		Title:       variant.ReplaceFirst{Old: "I", New: "EI"},
		Description: variant.ReplaceFirst{Old: "I", New: "EI"},
	}
}

func concat(base []string, more ...string) []string {
	out := make([]string, 0, len(base)+len(more))
	out = append(out, base...)
	return append(out, more...)
}
