package families

import (
	"fmt"
	"strings"

	"github.com/aretw0/compartments/pkg/catalog"
	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/compartments/pkg/variant"
)

// TwoStrainName is the registry name of the two strain family.
const TwoStrainName = "two_strain"

const forceOfInfection = "r0_%d/N*v*(1.0 +e*sin(2.0*M_PI*(t/ONE_YEAR + d)))*(%s + iota_%d)"

var (
	inf1 = fmt.Sprintf(forceOfInfection, 1, "IS+IR", 1)
	inf2 = fmt.Sprintf(forceOfInfection, 2, "SI+RI", 2)
)

func tr(from, to, rate, comment string) domain.Transition {
	return domain.Transition{From: from, To: to, Rate: rate, Comment: comment}
}

func tx(from, to, rate, comment string) domain.Transition {
	return domain.Transition{From: from, To: to, Rate: rate, Tag: transmission, Comment: comment}
}

// TwoStrain returns the family of two interacting strains.
func TwoStrain() *Family {
	cat := catalog.New()
	static := func(name string, ts ...domain.Transition) {
		cat.MustRegister(name, domain.StaticBlock(ts...))
	}

	static("birth", tr(domain.Reservoir, "SS", "mu_b*N", "birth"))
	static("recovery_E",
		tr("ES", "IS", "correct_rate(l)", "progression to infectious"),
		tr("SE", "SI", "correct_rate(l)", "progression to infectious"),
		tr("ER", "IR", "correct_rate(l)", "progression to infectious"),
		tr("RE", "RI", "correct_rate(l)", "progression to infectious"),
	)
	static("recovery",
		tr("IS", "RS", "correct_rate(v)", ""),
		tr("SI", "SR", "correct_rate(v)", ""),
		tr("IR", "RR", "correct_rate(v)", ""),
		tr("RI", "RR", "correct_rate(v)", ""),
	)
	static("recovery_Q",
		tr("IS", "QS", "correct_rate(v)", ""),
		tr("SI", "SQ", "correct_rate(v)", ""),
		tr("IR", "QR", "correct_rate(v)", ""),
		tr("RI", "RQ", "correct_rate(v)", ""),
	)
	static("waning_Q",
		tr("QS", "RS", "correct_rate(q)", ""),
		tr("SQ", "SR", "correct_rate(q)", ""),
		tr("QR", "RR", "correct_rate(q)", ""),
		tr("RQ", "RR", "correct_rate(q)", ""),
	)
	static("waning_immunity",
		tr("IR", "IS", "g", ""),
		tr("RI", "SI", "g", ""),
		tr("SR", "SS", "g", ""),
		tr("RS", "SS", "g", ""),
		tr("RR", "RS", "g", ""),
		tr("RR", "SR", "g", ""),
	)
	static("waning_immunity_E",
		tr("ER", "ES", "g", ""),
		tr("RE", "SE", "g", ""),
	)
	static("waning_immunity_Q",
		tr("QR", "QS", "g", ""),
		tr("RQ", "SQ", "g", ""),
	)

	static("infection",
		tx("SS", "IS", inf1, ""),
		tx("SS", "SI", inf2, ""),
		tx("SR", "IR", "sigma*"+inf1, ""),
		tx("RS", "RI", "sigma*"+inf2, ""),
	)
	static("infection_no_CI",
		tx("SS", "IS", inf1, ""),
		tx("SS", "SI", inf2, ""),
		tx("SR", "IR", inf1, ""),
		tx("RS", "RI", inf2, ""),
	)
	static("infection_sbri",
		tx("SS", "IS", "sigma*"+inf1, ""),
		tx("SS", "IR", "(1.0-sigma)*"+inf1, "polarized immunity"),
		tx("SS", "SI", "sigma*"+inf2, ""),
		tx("SS", "RI", "(1.0-sigma)*"+inf2, "polarized immunity"),
		tx("SR", "IR", inf1, ""),
		tx("SR", "RR", "(1.0-sigma)*"+inf2, "re-infection (re-exposed by 2, non infectious but fully susceptible => gain immunity to 1)"),
		tx("RS", "RI", inf2, ""),
		tx("RS", "RR", "(1.0-sigma)*"+inf1, "re-infection (re-exposed by 1, non infectious but fully susceptible => gain immunity to 2)"),
	)

	static("reinfection",
		tx("RS", "IS", "z*"+inf1, "re-infection"),
		tx("SR", "SI", "z*"+inf2, "re-infection"),
		tx("RR", "IR", "z*sigma*"+inf1, "re-infection we assume multiplicative effects"),
		tx("RR", "RI", "z*sigma*"+inf2, "re-infection we assume multiplicative effects"),
	)
	static("reinfection_no_CI",
		tx("RS", "IS", "z*"+inf1, "re-infection"),
		tx("SR", "SI", "z*"+inf2, "re-infection"),
		tx("RR", "IR", "z*"+inf1, "re-infection"),
		tx("RR", "RI", "z*"+inf2, "re-infection"),
	)

	static("boosting_Q",
		tx("RS", "QS", inf1, "re-exposure => boosting"),
		tx("SR", "SQ", inf2, "re-exposure => boosting"),
		tx("RR", "QR", "sigma*"+inf1, "re-exposure => boosting (+ cross protection effect)"),
		tx("RR", "RQ", "sigma*"+inf2, "re-exposure => boosting (+ cross protection effect)"),
	)
	static("boosting_Q_no_CI",
		tx("RS", "QS", inf1, "re-exposure => boosting"),
		tx("SR", "SQ", inf2, "re-exposure => boosting"),
		tx("RR", "QR", inf1, "re-exposure => boosting"),
		tx("RR", "RQ", inf2, "re-exposure => boosting"),
	)
	static("boosting_Q_with_reinfection",
		tx("RS", "QS", "(1.0-z)*"+inf1, "re-infection failed => boosting"),
		tx("SR", "SQ", "(1.0-z)*"+inf2, "re-infection failed => boosting"),
		tx("RR", "QR", "(1.0-z)*sigma*"+inf1, "re-infection failed => boosting (+ cross protection effect)"),
		tx("RR", "RQ", "(1.0-z)*sigma*"+inf2, "re-infection failed => boosting (+ cross protection effect)"),
	)
	static("boosting_Q_with_reinfection_no_CI",
		tx("RS", "QS", "(1.0-z)*"+inf1, "re-infection failed => boosting"),
		tx("SR", "SQ", "(1.0-z)*"+inf2, "re-infection failed => boosting"),
		tx("RR", "QR", "(1.0-z)*"+inf1, "re-infection failed => boosting"),
		tx("RR", "RQ", "(1.0-z)*"+inf2, "re-infection failed => boosting"),
	)

	cat.MustRegister("erlang_E", domain.GeneratorBlock(erlang("correct_rate(l)", "l", "ES", "SE", "ER", "RE")))
	cat.MustRegister("erlang_I", domain.GeneratorBlock(erlang("correct_rate(v)", "v", "IS", "SI", "IR", "RI")))

	deriveExposed(cat, "infection", "infection_no_CI", "infection_sbri", "reinfection", "reinfection_no_CI")

	sir := []string{"birth", "infection", "recovery"}
	siqr := []string{"birth", "infection", "recovery_Q", "waning_Q"}
	siqri := concat(siqr, "reinfection")
	sirSBRI := []string{"birth", "infection_sbri", "recovery"}

	meta := domain.Family{
		Name:        TwoStrainName,
		Description: "Two strain models with cross immunity",
		States: []domain.State{
			{ID: "SS", Comment: "susceptible to both strains"},

			{ID: "IS", Comment: "infectious with strain 1, susceptible to strain 2", Tag: []string{domain.TagInfectious}},
			{ID: "SI", Comment: "susceptible to strain 1, infectious with strain 2", Tag: []string{domain.TagInfectious}},
			{ID: "IR", Comment: "infectious with strain 1, immunized to strain 2", Tag: []string{domain.TagInfectious}},
			{ID: "RI", Comment: "immunized to strain 1, infectious with strain 2", Tag: []string{domain.TagInfectious}},

			{ID: "SR", Comment: "susceptible to strain 1, immunized to strain 2"},
			{ID: "RS", Comment: "immunized to strain 1, susceptible to strain 2"},

			{ID: "SQ", Comment: "susceptible to strain 1 but temporary protected to both strains"},
			{ID: "QS", Comment: "susceptible to strain 2 but temporary protected to both strains"},
			{ID: "RQ", Comment: "immunized to strain 1 but temporary protected to both strains"},
			{ID: "QR", Comment: "immunized to strain 2 but temporary protected to both strains"},

			{ID: "ES", Comment: "exposed to strain 1, susceptible to strain 2"},
			{ID: "SE", Comment: "susceptible to strain 1, exposed with strain 2"},
			{ID: "ER", Comment: "exposed with strain 1, immunized to strain 2"},
			{ID: "RE", Comment: "immunized to strain 1, exposed with strain 2"},

			{ID: "RR", Comment: "immunized to both strains", Tag: []string{domain.TagRemainder}},
		},
		Parameters: []domain.Parameter{
			{ID: "r0_1", Comment: "basic reproductive number of strain 1"},
			{ID: "r0_2", Comment: "basic reproductive number of strain 2"},
			{ID: "v", Comment: "recovery rate"},
			{ID: "l", Comment: "latency rate"},
			{ID: "m", Comment: "maternal immunity waning rate"},
			{ID: "q", Comment: "temporary full cross immunity wanning rate"},
			{ID: "g", Comment: "waning immunity rate"},
			{ID: "e", Comment: "seasonal forcing amplitude"},
			{ID: "d", Comment: "seasonal forcing dephasing"},
			{ID: "iota_1", Comment: "number of aliens infected with strain 1"},
			{ID: "iota_2", Comment: "number of aliens infected with strain 2"},
			{ID: "sigma", Comment: "partial cross immunity"},
			{ID: "z", Comment: "proportion of reinfection"},
			{ID: "mu_b", Comment: "birth rate"},
			{ID: "mu_d", Comment: "death rate"},
		},
		DeathParameter: "mu_b",
		Definitions: []domain.ModelDefinition{
			{Key: "sir", Name: "SIR_HBRS", Description: "SIR History based model with reduced susceptibility", Blocks: sir},
			{Key: "sirs", Name: "SIRS_HBRS", Description: "SIRS History based model with reduced susceptibility", Blocks: concat(sir, "waning_immunity")},
			{Key: "siri", Name: "SIRI_HBRS", Description: "SIRI History based model with reduced susceptibility", Blocks: concat(sir, "reinfection")},
			{Key: "siqr", Name: "SIQR_HBRS", Description: "SIQR History based model with reduced susceptibility", Blocks: siqr},
			{Key: "siqrs", Name: "SIQRS_HBRS", Description: "SIQRS History based model with reduced susceptibility", Blocks: concat(siqr, "waning_immunity", "waning_immunity_Q")},
			{Key: "siqri", Name: "SIQRI_HBRS", Description: "SIQRI History based model with reduced susceptibility", Blocks: siqri},
			{Key: "siqr_b", Name: "SIQR_HBRS_B", Description: "SIQR (with boosting) History based model with reduced susceptibility", Blocks: concat(siqr, "boosting_Q")},
			{Key: "siqri_b", Name: "SIQRI_HBRS_B", Description: "SIQRI (with boosting) History based model with reduced susceptibility", Blocks: concat(siqri, "boosting_Q_with_reinfection")},
			{Key: "sir_sbri", Name: "SIR_SBRI", Description: "SIR Status based model with reduced infectivity", Blocks: sirSBRI},
			{Key: "sirs_sbri", Name: "SIRS_SBRI", Description: "SIRS Status based model with reduced infectivity", Blocks: concat(sirSBRI, "waning_immunity")},
		},
	}

	noCrossImmunity := variant.Rule{
		Name: "no_cross_immunity",
		Adapter: map[string][]string{
			"infection":                   {"infection_no_CI"},
			"reinfection":                 {"reinfection_no_CI"},
			"boosting_Q":                  {"boosting_Q_no_CI"},
			"boosting_Q_with_reinfection": {"boosting_Q_with_reinfection_no_CI"},
		},
		Key:         variant.AppendSuffix{Suffix: "_no_CI"},
		Title:       variant.AppendSuffix{Suffix: "_no_CI"},
		Description: variant.AppendSuffix{Suffix: " without cross immunity"},
		// status based models have no history to drop
		Skip: func(key string) bool { return strings.Contains(key, "sbri") },
	}

	exposed := exposedRule(map[string][]string{
		"infection":         {"infection_E", "recovery_E"},
		"infection_no_CI":   {"infection_no_CI_E", "recovery_E"},
		"infection_sbri":    {"infection_sbri_E", "recovery_E"},
		"reinfection":       {"reinfection_E"},
		"reinfection_no_CI": {"reinfection_no_CI_E"},
		"waning_immunity":   {"waning_immunity", "waning_immunity_E"},
	})

	return mustNew(meta, cat, noCrossImmunity, exposed)
}
