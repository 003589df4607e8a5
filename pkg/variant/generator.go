package variant

import (
	"github.com/aretw0/compartments/pkg/domain"
)

// Rule describes one variant pass.
type Rule struct {
	// Name identifies the rule in errors and logs.
	Name string

	// Adapter maps a block name to its replacement sequence.
	Adapter map[string][]string

	// Key, Title and Description rename the definition's key, name and description.
	// A nil Rename keeps the value unchanged.
	Key         Rename
	Title       Rename
	Description Rename

	// Skip excludes definitions from the pass, by key. Nil means no exclusion.
	Skip func(key string) bool
}

// Apply derives the variant of def described by the rule.
func (r Rule) Apply(def domain.ModelDefinition) (domain.ModelDefinition, error) {
	key, err := rename(r.Name, "key", r.Key, def.Key)
	if err != nil {
		return domain.ModelDefinition{}, err
	}
	name, err := rename(r.Name, "name", r.Title, def.Name)
	if err != nil {
		return domain.ModelDefinition{}, err
	}
	desc, err := rename(r.Name, "description", r.Description, def.Description)
	if err != nil {
		return domain.ModelDefinition{}, err
	}

	return domain.ModelDefinition{
		Key:         key,
		Name:        name,
		Description: desc,
		Blocks:      Substitute(r.Adapter, def.Blocks),
	}, nil
}

// Generate runs the passes in order over a growing list of definitions.
// The base definitions come first in the result, followed by each pass's output in
// the order it was produced. Keys must stay unique.
func Generate(base []domain.ModelDefinition, passes ...Rule) ([]domain.ModelDefinition, error) {
	defs := make([]domain.ModelDefinition, 0, len(base)*(1<<len(passes)))
	keys := make(map[string]bool, len(base))
	for _, d := range base {
		if keys[d.Key] {
			return nil, &domain.DuplicateKeyError{Key: d.Key}
		}
		keys[d.Key] = true
		defs = append(defs, d.Clone())
	}

	for _, pass := range passes {
		snapshot := len(defs)
		for i := 0; i < snapshot; i++ {
			src := defs[i]
			if pass.Skip != nil && pass.Skip(src.Key) {
				continue
			}

			derived, err := pass.Apply(src)
			if err != nil {
				return nil, err
			}
			if keys[derived.Key] {
				return nil, &domain.DuplicateKeyError{Key: derived.Key}
			}
			keys[derived.Key] = true
			defs = append(defs, derived)
		}
	}

	return defs, nil
}
