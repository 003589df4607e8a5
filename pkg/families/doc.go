/*
Package families holds the disease families shipped with compartments.

A family bundles the global state and parameter catalogs, the block catalog and the
model definitions (base definitions plus the variants generated from them) of one
kind of epidemic:

  - one_strain: a single pathogen, S/E/I/Q/R compartments.
  - two_strain: two interacting strains with history based cross immunity, one
    compartment per pair of statuses (SS, IS, SI, ..., RR).

Both families inject deaths at rate mu_b so that births and deaths balance.
*/
package families
