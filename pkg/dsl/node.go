package dsl

import "github.com/aretw0/compartments/pkg/domain"

// BlockBuilder provides a fluent API for the transitions of a static block.
// Tag, Comment and Erlang apply to the last added transition.
type BlockBuilder struct {
	name        string
	transitions []domain.Transition
}

// Flow adds a transition.
func (bb *BlockBuilder) Flow(from, to, rate string) *BlockBuilder {
	bb.transitions = append(bb.transitions, domain.Transition{From: from, To: to, Rate: rate})
	return bb
}

// Birth adds a transition from the reservoir.
func (bb *BlockBuilder) Birth(to, rate string) *BlockBuilder {
	return bb.Flow(domain.Reservoir, to, rate)
}

// Tag tags the last transition.
func (bb *BlockBuilder) Tag(tags ...string) *BlockBuilder {
	if t := bb.last(); t != nil {
		t.Tag = append(t.Tag, tags...)
	}
	return bb
}

// Comment annotates the last transition.
func (bb *BlockBuilder) Comment(comment string) *BlockBuilder {
	if t := bb.last(); t != nil {
		t.Comment = comment
	}
	return bb
}

// Erlang gives the last transition an Erlang shape, with an optional rescaling parameter.
func (bb *BlockBuilder) Erlang(shape int, rescale string) *BlockBuilder {
	if t := bb.last(); t != nil {
		t.Shape = shape
		t.Rescale = rescale
	}
	return bb
}

func (bb *BlockBuilder) last() *domain.Transition {
	if len(bb.transitions) == 0 {
		return nil
	}
	return &bb.transitions[len(bb.transitions)-1]
}
