package domain

// ModelDefinition is the declarative description of a model: an ordered list of block
// names. Order only affects the readability of the assembled transition list.
type ModelDefinition struct {
	Key         string   `json:"key" yaml:"key" mapstructure:"key"`
	Name        string   `json:"name" yaml:"name" mapstructure:"name"`
	Description string   `json:"description" yaml:"description" mapstructure:"description"`
	Blocks      []string `json:"blocks" yaml:"blocks" mapstructure:"blocks"`
}

// Clone returns a copy of the definition that shares no memory with the receiver.
func (d ModelDefinition) Clone() ModelDefinition {
	c := d
	c.Blocks = append([]string(nil), d.Blocks...)
	return c
}

// BuiltModel is a fully assembled model, ready to be handed to a ModelSink.
type BuiltModel struct {
	// Family names the family the model was assembled from. Keys are only unique
	// within a family.
	Family string `json:"family,omitempty" yaml:"family,omitempty" mapstructure:"family"`

	Key         string `json:"key" yaml:"key" mapstructure:"key"`
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Description string `json:"description" yaml:"description" mapstructure:"description"`

	// Model lists every transition, injected deaths included.
	Model []Transition `json:"model" yaml:"model" mapstructure:"model"`

	// State lists the states referenced by Model, first-seen order, without the reservoir.
	State []State `json:"state" yaml:"state" mapstructure:"state"`

	// Parameter lists the declared parameters referenced by some rate, first-seen order.
	Parameter []Parameter `json:"parameter" yaml:"parameter" mapstructure:"parameter"`
}

// QualifiedKey is the storage key of a model: family/key, or the bare key when the
// family is unknown.
func QualifiedKey(family, key string) string {
	if family == "" {
		return key
	}
	return family + "/" + key
}

// QualifiedKey returns the key the model is stored under.
func (m *BuiltModel) QualifiedKey() string {
	return QualifiedKey(m.Family, m.Key)
}

// Clone returns a deep copy of the model.
func (m *BuiltModel) Clone() *BuiltModel {
	if m == nil {
		return nil
	}
	c := *m
	c.Model = CloneTransitions(m.Model)
	if m.State != nil {
		c.State = make([]State, len(m.State))
		for i, s := range m.State {
			c.State[i] = s.Clone()
		}
	}
	if m.Parameter != nil {
		c.Parameter = append([]Parameter(nil), m.Parameter...)
	}
	return &c
}

// Family groups the catalogs shared by a set of model definitions, e.g. all the
// one-strain models. The block catalog lives next to it (see package families).
type Family struct {
	Name        string
	Description string
	States      []State
	Parameters  []Parameter

	// DeathParameter is the rate used for injected death transitions.
	DeathParameter string

	Definitions []ModelDefinition
}
