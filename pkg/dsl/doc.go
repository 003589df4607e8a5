/*
Package dsl provides a fluent builder for model families.

It lets users define their own compartments, parameters, blocks and base models in Go
instead of extending the built-in one and two strain tables.

Example usage:

	package main

	import (
		"github.com/aretw0/compartments"
		"github.com/aretw0/compartments/pkg/domain"
		"github.com/aretw0/compartments/pkg/dsl"
		"github.com/aretw0/compartments/pkg/families"
	)

	func main() {
		b := dsl.New("measles").
			State("S", "susceptible").
			State("I", "infectious", domain.TagInfectious).
			State("R", "recovered", domain.TagRemainder).
			Param("beta", "contact rate").
			Param("gamma", "recovery rate").
			Param("mu", "death rate").
			Death("mu")

		b.Block("birth").Birth("S", "mu*N")
		b.Block("infection").Flow("S", "I", "beta*S*I/N").Tag(domain.TagTransmission)
		b.Block("recovery").Flow("I", "R", "gamma")

		b.Model("sir", "SIR", "SIR model", "birth", "infection", "recovery")

		measles, err := b.Build()
		if err != nil {
			panic(err)
		}

		reg, _ := families.NewRegistry(measles)
		eng := compartments.New(compartments.WithFamilies(reg))
		_ = eng
	}
*/
package dsl
