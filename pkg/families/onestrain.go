package families

import (
	"github.com/aretw0/compartments/pkg/catalog"
	"github.com/aretw0/compartments/pkg/domain"
)

// OneStrainName is the registry name of the single pathogen family.
const OneStrainName = "one_strain"

const oneStrainInfection = "r0/N*v*(1.0 +e*sin(2.0*M_PI*(t/ONE_YEAR + d)))*(I + iota)"

var transmission = []string{domain.TagTransmission}

// OneStrain returns the single pathogen family.
func OneStrain() *Family {
	cat := catalog.New()

	cat.MustRegister("birth", domain.StaticBlock(
		domain.Transition{From: domain.Reservoir, To: "S", Rate: "mu_b*N", Comment: "birth"},
	))
	cat.MustRegister("recovery_E", domain.StaticBlock(
		domain.Transition{From: "E", To: "I", Rate: "correct_rate(l)", Comment: "progression to infectious"},
	))
	cat.MustRegister("recovery", domain.StaticBlock(
		domain.Transition{From: "I", To: "R", Rate: "correct_rate(v)"},
	))
	cat.MustRegister("recovery_Q", domain.StaticBlock(
		domain.Transition{From: "I", To: "Q", Rate: "correct_rate(v)"},
	))
	cat.MustRegister("waning_Q", domain.StaticBlock(
		domain.Transition{From: "Q", To: "R", Rate: "correct_rate(q)"},
	))
	cat.MustRegister("waning_immunity", domain.StaticBlock(
		domain.Transition{From: "R", To: "S", Rate: "g"},
	))
	cat.MustRegister("infection", domain.StaticBlock(
		domain.Transition{From: "S", To: "I", Rate: oneStrainInfection, Tag: transmission},
	))
	cat.MustRegister("reinfection", domain.StaticBlock(
		domain.Transition{From: "R", To: "I", Rate: "z*" + oneStrainInfection, Tag: transmission, Comment: "re-infection"},
	))
	cat.MustRegister("boosting_Q_with_reinfection", domain.StaticBlock(
		domain.Transition{From: "R", To: "Q", Rate: "(1.0-z)*" + oneStrainInfection, Tag: transmission, Comment: "re-infection failed => boosting"},
	))
	cat.MustRegister("erlang_E", domain.GeneratorBlock(erlang("correct_rate(l)", "l", "E")))
	cat.MustRegister("erlang_I", domain.GeneratorBlock(erlang("correct_rate(v)", "v", "I")))

	deriveExposed(cat, "infection", "reinfection")

	sir := []string{"birth", "infection", "recovery"}
	siqri := []string{"birth", "infection", "recovery_Q", "waning_Q", "reinfection"}

	meta := domain.Family{
		Name:        OneStrainName,
		Description: "Single strain models",
		States: []domain.State{
			{ID: "S", Comment: "susceptible"},
			{ID: "E", Comment: "exposed"},
			{ID: "I", Comment: "infectious", Tag: []string{domain.TagInfectious}},
			{ID: "Q", Comment: "temporary protected"},
			{ID: "R", Comment: "immunized", Tag: []string{domain.TagRemainder}},
		},
		Parameters: []domain.Parameter{
			{ID: "r0", Comment: "basic reproductive number"},
			{ID: "v", Comment: "recovery rate"},
			{ID: "l", Comment: "latency rate"},
			{ID: "m", Comment: "maternal immunity waning rate"},
			{ID: "q", Comment: "temporary full cross immunity wanning rate"},
			{ID: "g", Comment: "waning immunity rate"},
			{ID: "e", Comment: "seasonal forcing amplitude"},
			{ID: "d", Comment: "seasonal forcing dephasing"},
			{ID: "iota", Comment: "number infected aliens"},
			{ID: "z", Comment: "proportion of reinfection"},
			{ID: "mu_b", Comment: "birth rate"},
			{ID: "mu_d", Comment: "death rate"},
		},
		DeathParameter: "mu_b",
		Definitions: []domain.ModelDefinition{
			{Key: "sir", Name: "SIR", Description: "SIR model", Blocks: sir},
			{Key: "sirs", Name: "SIRS", Description: "SIRS model", Blocks: concat(sir, "waning_immunity")},
			{Key: "siri", Name: "SIRI", Description: "SIRI model", Blocks: concat(sir, "reinfection")},
			{Key: "siqri", Name: "SIQRI", Description: "SIQRI model", Blocks: siqri},
			{Key: "siqri_b", Name: "SIQRI_B", Description: "SIQRI (with boosting) model", Blocks: concat(siqri, "boosting_Q_with_reinfection")},
		},
	}

	return mustNew(meta, cat, exposedRule(map[string][]string{
		"infection":   {"infection_E", "recovery_E"},
		"reinfection": {"reinfection_E"},
	}))
}
