package domain

// State is a compartment of the population.
type State struct {
	ID      string   `json:"id" yaml:"id" mapstructure:"id"`
	Comment string   `json:"comment" yaml:"comment" mapstructure:"comment"`
	Tag     []string `json:"tag,omitempty" yaml:"tag,omitempty" mapstructure:"tag"`
}

// HasTag reports whether the state carries the given tag.
func (s State) HasTag(tag string) bool {
	return hasTag(s.Tag, tag)
}

// Clone returns a copy of the state that shares no memory with the receiver.
func (s State) Clone() State {
	c := s
	if s.Tag != nil {
		c.Tag = append([]string(nil), s.Tag...)
	}
	return c
}

// Parameter is a named quantity referenced by rate expressions.
type Parameter struct {
	ID      string `json:"id" yaml:"id" mapstructure:"id"`
	Comment string `json:"comment" yaml:"comment" mapstructure:"comment"`
}

// StateIDs returns the identifiers of the given states, in order.
func StateIDs(states []State) []string {
	ids := make([]string, len(states))
	for i, s := range states {
		ids[i] = s.ID
	}
	return ids
}
