package domain

// Reservoir is the untracked external population used as the source of births and
// the sink of deaths. It never appears in a model's state list.
const Reservoir = "U"

// Well-known tags.
const (
	// TagRemainder marks the state whose outflow is managed elsewhere.
	// It is exempt from automatic death injection.
	TagRemainder = "remainder"

	// TagInfectious marks states that contribute to the force of infection.
	TagInfectious = "infectious"

	// TagTransmission marks transitions that represent an infection event.
	TagTransmission = "transmission"
)

// CommentDeath is attached to every injected death transition.
const CommentDeath = "death"
