package domain

// Transition defines a flow of individuals from one state to another.
type Transition struct {
	From string `json:"from" yaml:"from" mapstructure:"from"`
	To   string `json:"to" yaml:"to" mapstructure:"to"`

	// Rate is an algebraic expression, e.g. "r0/N*v*(I + iota)".
	Rate string `json:"rate" yaml:"rate" mapstructure:"rate"`

	Tag     []string `json:"tag,omitempty" yaml:"tag,omitempty" mapstructure:"tag"`
	Comment string   `json:"comment,omitempty" yaml:"comment,omitempty" mapstructure:"comment"`

	// Shape is the Erlang order of the transition. The simulator expands it into
	// Shape sequential stages, each firing at a rate rescaled by Rescale.
	Shape   int    `json:"shape,omitempty" yaml:"shape,omitempty" mapstructure:"shape"`
	Rescale string `json:"rescale,omitempty" yaml:"rescale,omitempty" mapstructure:"rescale"`
}

// HasTag reports whether the transition carries the given tag.
func (t Transition) HasTag(tag string) bool {
	return hasTag(t.Tag, tag)
}

// Clone returns a copy of the transition that shares no memory with the receiver.
func (t Transition) Clone() Transition {
	c := t
	if t.Tag != nil {
		c.Tag = append([]string(nil), t.Tag...)
	}
	return c
}

// CloneTransitions deep copies a transition list.
func CloneTransitions(ts []Transition) []Transition {
	if ts == nil {
		return nil
	}
	out := make([]Transition, len(ts))
	for i, t := range ts {
		out[i] = t.Clone()
	}
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
