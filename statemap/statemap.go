package statemap

import (
	"fmt"
	"sort"
)

// StateMap is a bidirectional mapping between symbols and integer states.
//
// Basic states occupy [0, stateCount); meta-states occupy
// [stateCount, metaStateCount) and denote non-empty subsets of basic
// states (degeneracy). A StateMap is immutable after construction and
// may be shared by reference across every variable that uses it.
type StateMap struct {
	name       string
	symbolSize int

	stateCount     int // number of basic states
	metaStateCount int // basic + meta states

	symbolToState map[string]int
	stateToSymbol []string // length metaStateCount
	degeneracy    [][]int  // length metaStateCount; degeneracy[s] = sorted basic state indices
}

// NewStateMap constructs a StateMap from an ordered list of basic
// symbols plus an optional map from meta-symbol to its degeneracy list
// (the basic symbols it stands for). meta may be nil.
//
// Validation: the basic alphabet must be non-empty, all symbols
// (basic and meta) must share one length, basic symbols must be
// unique, and every meta-symbol's degeneracy vector must be a
// non-empty set of basic symbols of this same StateMap (meta-symbols
// may not be defined in terms of other meta-symbols).
func NewStateMap(name string, symbols []string, meta map[string][]string) (*StateMap, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyAlphabet
	}

	symbolSize := len(symbols[0])
	symbolToState := make(map[string]int, len(symbols)+len(meta))
	stateToSymbol := make([]string, 0, len(symbols)+len(meta))
	degeneracy := make([][]int, 0, len(symbols)+len(meta))

	for i, sym := range symbols {
		if len(sym) != symbolSize {
			return nil, fmt.Errorf("statemap %q: symbol %q: %w", name, sym, ErrNonUniformSymbolSize)
		}
		if _, dup := symbolToState[sym]; dup {
			return nil, fmt.Errorf("statemap %q: symbol %q: %w", name, sym, ErrDuplicateSymbol)
		}
		symbolToState[sym] = i
		stateToSymbol = append(stateToSymbol, sym)
		degeneracy = append(degeneracy, []int{i})
	}
	stateCount := len(symbols)

	// Meta-symbols are processed in sorted key order for determinism:
	// map iteration order is not stable in Go, and assigned state
	// indices are part of the external contract.
	metaNames := make([]string, 0, len(meta))
	for m := range meta {
		metaNames = append(metaNames, m)
	}
	sort.Strings(metaNames)

	for _, m := range metaNames {
		degSymbols := meta[m]
		if len(m) != symbolSize {
			return nil, fmt.Errorf("statemap %q: meta-symbol %q: %w", name, m, ErrNonUniformSymbolSize)
		}
		if _, dup := symbolToState[m]; dup {
			return nil, fmt.Errorf("statemap %q: meta-symbol %q: %w", name, m, ErrDuplicateSymbol)
		}
		if len(degSymbols) == 0 {
			return nil, fmt.Errorf("statemap %q: meta-symbol %q: %w", name, m, ErrEmptyDegeneracy)
		}

		seen := make(map[int]bool, len(degSymbols))
		for _, ds := range degSymbols {
			idx, ok := symbolToState[ds]
			if !ok {
				return nil, fmt.Errorf("statemap %q: meta-symbol %q: degeneracy symbol %q: %w", name, m, ds, ErrUnknownSymbol)
			}
			if idx >= stateCount {
				return nil, fmt.Errorf("statemap %q: meta-symbol %q: degeneracy symbol %q: %w", name, m, ds, ErrMetaOfMeta)
			}
			seen[idx] = true
		}

		deg := make([]int, 0, len(seen))
		for idx := range seen {
			deg = append(deg, idx)
		}
		sort.Ints(deg)

		state := len(stateToSymbol)
		symbolToState[m] = state
		stateToSymbol = append(stateToSymbol, m)
		degeneracy = append(degeneracy, deg)
	}

	return &StateMap{
		name:           name,
		symbolSize:     symbolSize,
		stateCount:     stateCount,
		metaStateCount: len(stateToSymbol),
		symbolToState:  symbolToState,
		stateToSymbol:  stateToSymbol,
		degeneracy:     degeneracy,
	}, nil
}

// StateOf returns the state index for symbol, or ErrUnknownSymbol.
func (sm *StateMap) StateOf(symbol string) (int, error) {
	s, ok := sm.symbolToState[symbol]
	if !ok {
		return 0, fmt.Errorf("statemap %q: %q: %w", sm.name, symbol, ErrUnknownSymbol)
	}
	return s, nil
}

// SymbolOf returns the canonical symbol for state, defined for every
// state in [0, MetaStateCount()).
func (sm *StateMap) SymbolOf(state int) (string, error) {
	if state < 0 || state >= sm.metaStateCount {
		return "", fmt.Errorf("statemap %q: state %d: %w", sm.name, state, ErrUnknownState)
	}
	return sm.stateToSymbol[state], nil
}

// DegeneracyStates returns the basic state indices that state resolves
// to: a single-element slice for a basic state, or the precomputed
// degeneracy vector for a meta-state.
func (sm *StateMap) DegeneracyStates(state int) ([]int, error) {
	if state < 0 || state >= sm.metaStateCount {
		return nil, fmt.Errorf("statemap %q: state %d: %w", sm.name, state, ErrUnknownState)
	}
	return sm.degeneracy[state], nil
}

// DegeneracyOf returns the basic symbols that symbol (possibly a
// meta-symbol) resolves to.
func (sm *StateMap) DegeneracyOf(symbol string) ([]string, error) {
	state, err := sm.StateOf(symbol)
	if err != nil {
		return nil, err
	}
	deg, _ := sm.DegeneracyStates(state) // state already validated
	out := make([]string, len(deg))
	for i, s := range deg {
		out[i] = sm.stateToSymbol[s]
	}
	return out, nil
}

// StateCount returns the number of basic states.
func (sm *StateMap) StateCount() int { return sm.stateCount }

// MetaStateCount returns the number of basic states plus meta-states.
func (sm *StateMap) MetaStateCount() int { return sm.metaStateCount }

// SymbolSize returns the fixed length shared by every symbol in sm.
func (sm *StateMap) SymbolSize() int { return sm.symbolSize }

// Name returns the StateMap's name.
func (sm *StateMap) Name() string { return sm.name }
