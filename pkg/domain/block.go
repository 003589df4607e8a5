package domain

// BlockKind discriminates the two block variants.
type BlockKind int

const (
	// BlockStatic holds a fixed, ordered list of transitions.
	BlockStatic BlockKind = iota
	// BlockGenerator computes its transitions from the active states and a stage count.
	BlockGenerator
)

func (k BlockKind) String() string {
	switch k {
	case BlockStatic:
		return "static"
	case BlockGenerator:
		return "generator"
	default:
		return "unknown"
	}
}

// GeneratorFunc produces the transitions of a parameterized block.
// stages is 0 when the block was referenced without a stage count.
// Implementations must not retain or mutate active.
type GeneratorFunc func(active []string, stages int) []Transition

// Block is a named, reusable group of transitions.
// Use StaticBlock or GeneratorBlock to construct one.
type Block struct {
	kind        BlockKind
	transitions []Transition
	generate    GeneratorFunc
}

// StaticBlock creates a block holding a copy of the given transitions.
func StaticBlock(transitions ...Transition) Block {
	return Block{kind: BlockStatic, transitions: CloneTransitions(transitions)}
}

// GeneratorBlock creates a block computed on demand.
func GeneratorBlock(fn GeneratorFunc) Block {
	return Block{kind: BlockGenerator, generate: fn}
}

// Kind returns the variant of the block.
func (b Block) Kind() BlockKind {
	return b.kind
}

// Transitions returns a copy of a static block's transitions (nil for generators).
func (b Block) Transitions() []Transition {
	return CloneTransitions(b.transitions)
}

// Generate invokes a generator block. The result is copied so callers can never reach
// memory shared with the generator. It returns nil for static blocks.
func (b Block) Generate(active []string, stages int) []Transition {
	if b.kind != BlockGenerator || b.generate == nil {
		return nil
	}
	in := append([]string(nil), active...)
	return CloneTransitions(b.generate(in, stages))
}
