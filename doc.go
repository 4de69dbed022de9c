// Package dfgraph is an in-memory engine for building, running, and
// learning discrete factor graphs in Go.
//
// A factor graph is a bipartite network of variable nodes and factor
// nodes, where each factor holds a potential over the variables it
// touches. dfgraph restricts itself to tree-shaped (cycle-free,
// connected) graphs over discrete variables, which lets inference run
// exactly via two-pass sum-product and max-product message passing
// rather than an approximate or iterative scheme.
//
// Everything is organized under focused subpackages:
//
//	statemap/   — named states per variable, with meta-symbols expanding
//	              to a set of underlying states (e.g. ambiguity codes)
//	statemask/  — translates observed symbols into boolean state masks
//	              consumed by inference
//	potential/  — dense matrix type for factor potentials, pseudocounts
//	              and expectation counts
//	factor/     — normalized, re-estimable potentials (global, row, or
//	              column normalized) with pseudo-count smoothing
//	dfg/        — the graph itself: topology, sum-product, max-product,
//	              clone, and expectation-count accumulation
//	dfginfo/    — binds a DFG to human-readable variable/factor names
//	              and per-variable state maps
//	em/         — expectation-maximization training loop over a DfgInfo
//	              and FactorSet, sequential or parallel
//
// A typical session builds a DFG and its FactorSet, wraps them in a
// DfgInfo for name-based access, runs RunSumProduct or RunMaxProduct
// for inference, and runs em.RunEM for parameter learning from
// partially observed data. See cmd/dfgdemo for runnable scenarios
// covering all three.
//
// Numeric underflow over long chains is handled by rescaling: every
// message is divided by its own local scale right after it is
// computed, and the log of that scale accumulates alongside the
// message so the partition function can be reconstructed exactly
// without ever multiplying vanishingly small floats together.
package dfgraph
