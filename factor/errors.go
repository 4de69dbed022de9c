package factor

import "errors"

// Sentinel errors returned by the factor package.
var (
	// ErrMisshapen indicates a potential or pseudocount matrix does not
	// match the shape the Factor was constructed (or later expected) with.
	ErrMisshapen = errors.New("factor: misshapen matrix")

	// ErrNotNormalized indicates an initial potential matrix violates its
	// family's normalization constraint beyond the allowed tolerance.
	ErrNotNormalized = errors.New("factor: initial potential is not normalized for its family")

	// ErrZeroSum indicates Optimize found a zero sum in a required
	// normalizing group (a row, a column, or the whole matrix) and
	// therefore could not normalize without dividing by zero.
	ErrZeroSum = errors.New("factor: zero sum in required normalizing group")

	// ErrUnknownFamily indicates an invalid Family tag value.
	ErrUnknownFamily = errors.New("factor: unknown family")
)
