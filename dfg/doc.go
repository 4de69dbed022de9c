// Package dfg implements the discrete factor graph engine: the
// bipartite graph of variable and factor nodes, adjacency and
// topological ordering from a chosen root, and the sum-product and
// max-product message-passing algorithms that run over it.
//
// A DFG is constructed once from a per-variable state-count vector and
// an ordered list of factor specifications (each naming the 1 or 2
// variable indices it touches and its potential). Construction chooses
// variable 0 as the spanning-tree root and computes a topological
// order via a single breadth-first traversal; RunSumProduct and
// RunMaxProduct then each perform their own message-passing schedule
// against that fixed topology.
//
// Numeric underflow in long chains is handled by rescaling: every
// computed message is divided by its own local scale (its sum, for
// sum-product; its max, for max-product) immediately after
// computation. For sum-product messages the log of that scale is folded
// into a running per-message cumulative log-scale so NormalizationConstant can
// reconstruct Z without ever multiplying vanishingly small floats
// together.
package dfg
