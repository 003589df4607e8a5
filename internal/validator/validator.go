// Package validator lints model families before anything is built.
package validator

import (
	"fmt"
	"sort"

	"github.com/aretw0/compartments/pkg/catalog"
	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/compartments/pkg/families"
	"github.com/aretw0/compartments/pkg/ports"
	"go.uber.org/multierr"
)

// ValidateFamily checks every definition of f without assembling it: each block must
// resolve, each transition must stay within the declared states and each rate must
// parse. The death parameter must be declared. All problems are reported, each once.
func ValidateFamily(f *families.Family, analyzer ports.RateAnalyzer) error {
	var errs error
	seen := make(map[string]bool)
	report := func(err error) {
		if msg := err.Error(); !seen[msg] {
			seen[msg] = true
			errs = multierr.Append(errs, err)
		}
	}

	declared := make(map[string]bool, len(f.Parameters))
	for _, p := range f.Parameters {
		declared[p.ID] = true
	}
	if !declared[f.DeathParameter] {
		report(fmt.Errorf("family %q: death parameter %q is not declared", f.Name, f.DeathParameter))
	}

	active := domain.StateIDs(f.States)
	states := make(map[string]bool, len(active))
	for _, id := range active {
		states[id] = true
	}

	for _, def := range f.Definitions {
		for _, name := range def.Blocks {
			ts, err := f.Catalog.Resolve(name, active)
			if err != nil {
				report(fmt.Errorf("model %q: %w", def.Key, err))
				continue
			}
			for _, t := range ts {
				for _, id := range []string{t.From, t.To} {
					if id != domain.Reservoir && !states[id] {
						report(&domain.UndeclaredStateError{Model: def.Key, State: id})
					}
				}
				if _, err := analyzer.Identifiers(t.Rate); err != nil {
					report(fmt.Errorf("block %q: %w", name, err))
				}
			}
		}
	}
	return errs
}

// UnusedBlocks lists the catalog blocks no definition of f refers to, sorted.
// A stage-count reference such as erlang_I_3 uses its generator.
func UnusedBlocks(f *families.Family) []string {
	used := make(map[string]bool)
	for _, def := range f.Definitions {
		for _, name := range def.Blocks {
			used[name] = true
			if base, _, ok := catalog.ParseStageName(name); ok {
				used[base] = true
			}
		}
	}

	var unused []string
	for _, name := range f.Catalog.Names() {
		if !used[name] {
			unused = append(unused, name)
		}
	}
	sort.Strings(unused)
	return unused
}
