package families

import "github.com/aretw0/compartments/pkg/domain"

// erlang returns a generator adding an Erlang distributed sojourn to the given
// compartments: one self-loop per compartment, expanded into stages by the simulator.
// Without a stage count (or with a single stage) the block is empty.
func erlang(rate, rescale string, compartments ...string) domain.GeneratorFunc {
	return func(active []string, stages int) []domain.Transition {
		if stages < 2 {
			return nil
		}

		present := make(map[string]bool, len(active))
		for _, id := range active {
			present[id] = true
		}

		var out []domain.Transition
		for _, c := range compartments {
			if !present[c] {
				continue
			}
			out = append(out, domain.Transition{
				From:    c,
				To:      c,
				Rate:    rate,
				Shape:   stages,
				Rescale: rescale,
			})
		}
		return out
	}
}
