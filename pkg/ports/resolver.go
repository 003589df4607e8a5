package ports

import "github.com/aretw0/compartments/pkg/domain"

// BlockResolver turns a block name into its transitions.
type BlockResolver interface {
	// Resolve returns the transitions of the named block given the active state ids.
	// It returns *domain.UnknownBlockError for unregistered names.
	Resolve(name string, active []string) ([]domain.Transition, error)
}

// RateAnalyzer tokenizes rate expressions.
type RateAnalyzer interface {
	// Identifiers returns the identifiers referenced by expr, in source order.
	// Operators, literals and function names are never identifiers.
	Identifiers(expr string) ([]string, error)
}
