package statemap

import "errors"

// Sentinel errors returned by the statemap package.
var (
	// ErrUnknownSymbol indicates a symbol not registered in the StateMap.
	ErrUnknownSymbol = errors.New("statemap: unknown symbol")

	// ErrUnknownState indicates a state index outside [0, MetaStateCount).
	ErrUnknownState = errors.New("statemap: unknown state")

	// ErrEmptyAlphabet indicates an attempt to construct a StateMap with
	// no basic symbols.
	ErrEmptyAlphabet = errors.New("statemap: alphabet must be non-empty")

	// ErrNonUniformSymbolSize indicates symbols of differing lengths were
	// supplied to one StateMap.
	ErrNonUniformSymbolSize = errors.New("statemap: all symbols must share one size")

	// ErrDuplicateSymbol indicates the same symbol was registered twice.
	ErrDuplicateSymbol = errors.New("statemap: duplicate symbol")

	// ErrEmptyDegeneracy indicates a meta-symbol whose degeneracy vector
	// would be empty.
	ErrEmptyDegeneracy = errors.New("statemap: meta-symbol degeneracy vector must be non-empty")

	// ErrMetaOfMeta indicates a meta-symbol's degeneracy vector referenced
	// another meta-symbol instead of only basic symbols.
	ErrMetaOfMeta = errors.New("statemap: meta-symbol degeneracy vector may only reference basic symbols")

	// ErrAlphabetTooLarge indicates a multi-state (tensor power) StateMap
	// construction would exceed the safe composite-entry cap.
	ErrAlphabetTooLarge = errors.New("statemap: composite alphabet exceeds safe size cap")

	// ErrInvalidMultiplicity indicates a multi-state StateMap was
	// requested with multiplicity n < 1.
	ErrInvalidMultiplicity = errors.New("statemap: multiplicity must be >= 1")
)
