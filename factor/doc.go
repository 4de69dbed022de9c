// Package factor implements discrete factor potentials and their
// re-estimation from submitted expectation counts.
//
// A Factor holds a potential.Matrix (the current potential), an
// optional pseudocount matrix of identical shape, a running count
// accumulator, and a Family tag selecting how Optimize normalizes
// accumulated counts:
//
//   - GlobalNorm: the whole matrix sums to one.
//   - RowNorm:    every row sums to one.
//   - ColumnNorm: every column sums to one.
//
// The source this package is grounded on (a C++ discrete-factor-graph
// library) expresses these three variants as a class hierarchy
// (AbstractBaseFactor -> AbstractFullyParameterizedFactor ->
// {GlobalNormFactor, RowNormFactor, ColumnNormFactor)): the only
// behavior that actually varies between them is the normalization rule
// used by Optimize, so here it is one struct with a tagged Family
// field and a single dispatching method, rather than a type hierarchy.
package factor
