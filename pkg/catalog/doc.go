/*
Package catalog implements the block registry used to assemble models.

A catalog maps block names to blocks. Static blocks resolve to a copy of their
transitions; generator blocks are invoked with the active state identifiers and an
optional stage count.

# Stage Count Grammar

A block reference may carry an Erlang order as a numeric suffix:

	reference = base "_" stages
	stages    = nonzero-digit { digit }

"erlang_I_3" resolves the generator "erlang_I" with 3 stages. A registered name always
wins over the grammar, so a block literally named "foo_2" is never reinterpreted.
*/
package catalog
