package potential

import "errors"

// Sentinel errors returned by the potential package.
var (
	// ErrInvalidDimensions indicates requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("potential: dimensions must be > 0")

	// ErrIndexOutOfBounds indicates a row or column index outside the matrix.
	ErrIndexOutOfBounds = errors.New("potential: index out of bounds")

	// ErrShapeMismatch indicates two matrices expected to share shape do not.
	ErrShapeMismatch = errors.New("potential: shape mismatch")
)
