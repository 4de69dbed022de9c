// Package em implements the EM-style outer loop that learns factor
// potentials from expectation counts: for each iteration, clear every
// factor's count accumulator, run sum-product over every observed data
// point to accumulate expectation counts (optionally in parallel, each
// worker against its own dfg.DFG clone), submit the aggregated counts
// to the FactorSet, and re-optimize. The loop stops after
// cfg.MaxIterations or once the total log-likelihood across data
// points stops improving by more than cfg.Tolerance.
package em
