// Package statemap_test verifies StateMap construction, symbol/state
// round-tripping, and degeneracy resolution.
package statemap_test

import (
	"testing"

	"github.com/katalvlaran/dfgraph/statemap"
	"github.com/stretchr/testify/require"
)

func nucleotideMap(t *testing.T) *statemap.StateMap {
	t.Helper()
	sm, err := statemap.NewStateMap("nuc", []string{"A", "C", "G", "T"}, map[string][]string{
		"N": {"A", "C", "G", "T"},
		"R": {"A", "G"},
	})
	require.NoError(t, err) // basic + meta construction must succeed

	return sm
}

// TestNewStateMap_EmptyAlphabet ensures an empty basic alphabet is rejected.
func TestNewStateMap_EmptyAlphabet(t *testing.T) {
	_, err := statemap.NewStateMap("empty", nil, nil)
	require.ErrorIs(t, err, statemap.ErrEmptyAlphabet)
}

// TestNewStateMap_NonUniformSize ensures symbols of differing length are rejected.
func TestNewStateMap_NonUniformSize(t *testing.T) {
	_, err := statemap.NewStateMap("bad", []string{"A", "AA"}, nil)
	require.ErrorIs(t, err, statemap.ErrNonUniformSymbolSize)
}

// TestNewStateMap_DuplicateSymbol ensures duplicate basic symbols are rejected.
func TestNewStateMap_DuplicateSymbol(t *testing.T) {
	_, err := statemap.NewStateMap("dup", []string{"A", "A"}, nil)
	require.ErrorIs(t, err, statemap.ErrDuplicateSymbol)
}

// TestNewStateMap_MetaOfMeta ensures a meta-symbol cannot reference another meta-symbol.
func TestNewStateMap_MetaOfMeta(t *testing.T) {
	_, err := statemap.NewStateMap("bad", []string{"A", "C"}, map[string][]string{
		"M": {"A"},
		"Z": {"M"}, // Z references meta-symbol M, not a basic symbol
	})
	require.ErrorIs(t, err, statemap.ErrMetaOfMeta)
}

// TestNewStateMap_EmptyDegeneracy ensures a meta-symbol with an empty degeneracy vector is rejected.
func TestNewStateMap_EmptyDegeneracy(t *testing.T) {
	_, err := statemap.NewStateMap("bad", []string{"A", "C"}, map[string][]string{"N": {}})
	require.ErrorIs(t, err, statemap.ErrEmptyDegeneracy)
}

// TestStateMap_RoundTrip locks in spec property 1: symbol_of(state_of(s)) == s for basic symbols.
func TestStateMap_RoundTrip(t *testing.T) {
	sm := nucleotideMap(t)
	for _, sym := range []string{"A", "C", "G", "T"} {
		state, err := sm.StateOf(sym)
		require.NoError(t, err)

		back, err := sm.SymbolOf(state)
		require.NoError(t, err)
		require.Equal(t, sym, back)
	}
}

// TestStateMap_UnknownSymbol ensures StateOf fails for a symbol never registered.
func TestStateMap_UnknownSymbol(t *testing.T) {
	sm := nucleotideMap(t)
	_, err := sm.StateOf("X")
	require.ErrorIs(t, err, statemap.ErrUnknownSymbol)
}

// TestStateMap_Counts checks StateCount/MetaStateCount/SymbolSize bookkeeping.
func TestStateMap_Counts(t *testing.T) {
	sm := nucleotideMap(t)
	require.Equal(t, 4, sm.StateCount())
	require.Equal(t, 6, sm.MetaStateCount()) // 4 basic + N + R
	require.Equal(t, 1, sm.SymbolSize())
	require.Equal(t, "nuc", sm.Name())
}

// TestStateMap_DegeneracyOf checks degeneracy resolution for basic and meta symbols.
func TestStateMap_DegeneracyOf(t *testing.T) {
	sm := nucleotideMap(t)

	deg, err := sm.DegeneracyOf("A")
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, deg) // a basic symbol's degeneracy is itself

	deg, err = sm.DegeneracyOf("N")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"A", "C", "G", "T"}, deg)

	deg, err = sm.DegeneracyOf("R")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"A", "G"}, deg)
}
