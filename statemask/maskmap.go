package statemask

import (
	"fmt"

	"github.com/katalvlaran/dfgraph/statemap"
)

// StateMaskMap precomputes, for every meta-state of a StateMap, the
// StateMask over basic states that observing that meta-state's symbol
// implies. Lookups by symbol are a map index plus a slice index; the
// precomputation happens once at construction.
type StateMaskMap struct {
	sm    *statemap.StateMap
	masks []StateMask // indexed by meta-state
}

// NewStateMaskMap builds a StateMaskMap over sm, precomputing one mask
// per basic and meta-state.
func NewStateMaskMap(sm *statemap.StateMap) (*StateMaskMap, error) {
	if sm == nil {
		return nil, ErrNilStateMap
	}

	masks := make([]StateMask, sm.MetaStateCount())
	for state := 0; state < sm.MetaStateCount(); state++ {
		deg, err := sm.DegeneracyStates(state)
		if err != nil {
			return nil, err
		}
		mask := make(StateMask, sm.StateCount())
		for _, s := range deg {
			mask[s] = true
		}
		masks[state] = mask
	}

	return &StateMaskMap{sm: sm, masks: masks}, nil
}

// StateMap returns the underlying StateMap.
func (mm *StateMaskMap) StateMap() *statemap.StateMap { return mm.sm }

// MaskOf returns the StateMask implied by observing symbol.
func (mm *StateMaskMap) MaskOf(symbol string) (StateMask, error) {
	state, err := mm.sm.StateOf(symbol)
	if err != nil {
		return nil, err
	}
	return mm.masks[state], nil
}

// Unobserved returns the all-true StateMask for an unobserved variable.
func (mm *StateMaskMap) Unobserved() StateMask {
	return AllTrue(mm.sm.StateCount())
}

// StateMaskMapSet bundles one StateMaskMap per variable in a DFG, and
// translates a full (possibly partial) symbol observation into
// per-variable masks in one call.
type StateMaskMapSet struct {
	order []string
	byVar map[string]*StateMaskMap
}

// NewStateMaskMapSet builds a StateMaskMapSet from a name-ordered list
// of (variable name, StateMap) pairs.
func NewStateMaskMapSet(variables []string, maps map[string]*statemap.StateMap) (*StateMaskMapSet, error) {
	set := &StateMaskMapSet{
		order: make([]string, 0, len(variables)),
		byVar: make(map[string]*StateMaskMap, len(variables)),
	}
	for _, v := range variables {
		sm, ok := maps[v]
		if !ok {
			return nil, fmt.Errorf("statemask.NewStateMaskMapSet: variable %q: %w", v, ErrUnknownVariable)
		}
		mm, err := NewStateMaskMap(sm)
		if err != nil {
			return nil, fmt.Errorf("statemask.NewStateMaskMapSet: variable %q: %w", v, err)
		}
		set.byVar[v] = mm
		set.order = append(set.order, v)
	}
	return set, nil
}

// Variables returns the variable names in the set's fixed order.
func (s *StateMaskMapSet) Variables() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the named variable's StateMaskMap, or nil if absent.
func (s *StateMaskMapSet) Get(variable string) *StateMaskMap {
	return s.byVar[variable]
}

// SymbolsToMasks translates an observation (variable name -> observed
// symbol) into a mask per variable in the set. A variable absent from
// observed is treated as unobserved and gets an all-true mask.
func (s *StateMaskMapSet) SymbolsToMasks(observed map[string]string) (map[string]StateMask, error) {
	out := make(map[string]StateMask, len(s.order))
	for _, v := range s.order {
		mm := s.byVar[v]
		symbol, ok := observed[v]
		if !ok {
			out[v] = mm.Unobserved()
			continue
		}
		mask, err := mm.MaskOf(symbol)
		if err != nil {
			return nil, fmt.Errorf("statemask.StateMaskMapSet.SymbolsToMasks: variable %q: %w", v, err)
		}
		out[v] = mask
	}
	return out, nil
}
