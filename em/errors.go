package em

import "errors"

// Sentinel errors returned by the em package.
var (
	// ErrNoData indicates RunEM was called with zero data points.
	ErrNoData = errors.New("em: no data points")

	// ErrInvalidConfig indicates a Config field is out of range
	// (MaxIterations <= 0, or Workers <= 0 when Parallel is set).
	ErrInvalidConfig = errors.New("em: invalid config")
)
