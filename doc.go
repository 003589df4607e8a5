/*
Package compartments assembles formal descriptions of compartmental epidemic models.

Models are not written by hand. Each one is a short list of reusable blocks (infection,
recovery, waning immunity...) picked from the catalog of a disease family. The toolkit
resolves the blocks into transitions, derives the minimal state and parameter sets,
injects a death transition for every compartment that needs one and hands the result to
a sink: an HTTP endpoint, a Redis store or a loam repository.

# Concept

A family bundles the global catalogs (states, parameters, blocks) with its base model
definitions. Variant rules derive whole new families of models from the base ones by
substituting blocks and renaming keys, e.g. every SIR-like model gets an SEIR-like twin
with an exposed stage.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/compartments"
	)

	func main() {
		eng := compartments.New()

		models, err := eng.Build(context.Background(), "one_strain")
		if err != nil {
			log.Fatal(err)
		}

		for _, m := range models {
			fmt.Println(m.Key, len(m.Model), "transitions")
		}
	}
*/
package compartments
