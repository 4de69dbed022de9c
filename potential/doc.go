// Package potential provides the dense row-major float64 matrix type
// used to store factor potentials, pseudocounts, and expectation
// counts throughout dfgraph.
//
// Matrix is deliberately small: a 1×S unary potential or an R×C
// pairwise potential, plus the reductions a factor's re-estimation
// needs (row sums, column sums, total sum, element-wise accumulation
// and scaling). It does not attempt to be a general linear-algebra
// type — no inversion, decomposition, or graph-adjacency conversion
// lives here, because no factor operation ever requires one.
package potential
