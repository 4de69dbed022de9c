package dfginfo

import "errors"

// Sentinel errors returned by the dfginfo package.
var (
	// ErrUnknownVariable indicates a variable name has no registered index.
	ErrUnknownVariable = errors.New("dfginfo: unknown variable")

	// ErrUnknownFactor indicates a factor name has no registered index.
	ErrUnknownFactor = errors.New("dfginfo: unknown factor")

	// ErrLengthMismatch indicates a constructor's parallel slices
	// (names, StateMaps, the DFG's own variable/factor counts) disagree
	// in length.
	ErrLengthMismatch = errors.New("dfginfo: length mismatch")
)
