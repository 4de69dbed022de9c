package statemask

import "errors"

// Sentinel errors returned by the statemask package.
var (
	// ErrUnknownVariable indicates a variable name has no registered
	// StateMaskMap in a StateMaskMapSet.
	ErrUnknownVariable = errors.New("statemask: unknown variable")

	// ErrNilStateMap indicates a StateMaskMap was built from a nil StateMap.
	ErrNilStateMap = errors.New("statemask: nil StateMap")
)
