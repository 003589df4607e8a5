/*
Package domain contains the core domain models of the compartments toolkit.

It defines the building blocks of a compartmental epidemic model description: states
(compartments), parameters, transitions carrying symbolic rate expressions, reusable
blocks of transitions, model definitions and the fully built models handed to
persistence. The package is kept pure and free of I/O, following Hexagonal
Architecture principles.

# Key Entities

  - Transition: A directed edge between two states with a rate expression.
  - State: A compartment tracked by a model (the reservoir "U" is never a State).
  - Block: A named group of transitions, either static or generated on demand.
  - ModelDefinition: An ordered list of block names plus display metadata.
  - BuiltModel: The assembled model with derived states, parameters and deaths.
*/
package domain
