package dfg

import "errors"

// Sentinel errors returned by the dfg package.
var (
	// ErrMisshapen indicates a factor's potential shape does not match
	// its neighbors' state counts, or a reset matrix's shape does not
	// match the factor it would replace.
	ErrMisshapen = errors.New("dfg: misshapen potential")

	// ErrGraphMalformed indicates the graph is disconnected or
	// contains a cycle; the engine requires a single connected tree (a
	// forest of several components is rejected as disconnected) and
	// does not attempt loop-breaking.
	ErrGraphMalformed = errors.New("dfg: graph is not a tree")

	// ErrUnderflow indicates the reconstructed partition function Z fell
	// below the range NormalizationConstant reports; callers should retry
	// with a rescaled or log-space formulation of their potentials.
	ErrUnderflow = errors.New("dfg: numeric underflow computing Z")

	// ErrZeroEvidence indicates the supplied evidence masks are
	// inconsistent with every joint state (some variable's evidence
	// excludes every state compatible with its neighbors), yielding a
	// zero partition function.
	ErrZeroEvidence = errors.New("dfg: evidence is inconsistent with every state")

	// ErrNotRun indicates a derived-quantity operation (marginals, Z)
	// was called before RunSumProduct.
	ErrNotRun = errors.New("dfg: sum-product has not been run")

	// ErrInvalidMasks indicates the masks slice passed to
	// RunSumProduct/RunMaxProduct/AccumulateCounts does not have one
	// entry per variable, or an entry's length does not match its
	// variable's state count.
	ErrInvalidMasks = errors.New("dfg: invalid evidence masks")
)
