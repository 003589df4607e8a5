/*
Package variant derives families of model definitions from a base family.

A Rule pairs an adapter map, which rewrites the block list of a definition, with
renaming rules for its key, name and description. Both always apply together, so a
variant that inserts a latency stage is also labeled as such.

Rules run as an explicit, ordered list of passes. Each pass sees the definitions that
existed when it started (the base family plus the output of earlier passes) and
appends its own output:

	defs, err := variant.Generate(base,
		variant.Rule{Name: "no_cross_immunity", ...},
		variant.Rule{Name: "exposed", ...},
	)

Substitutions do not commute in general, so the order of the passes is part of the
family definition.
*/
package variant
