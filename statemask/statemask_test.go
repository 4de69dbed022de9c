package statemask_test

import (
	"testing"

	"github.com/katalvlaran/dfgraph/statemap"
	"github.com/katalvlaran/dfgraph/statemask"
	"github.com/stretchr/testify/require"
)

func nucleotideMap(t *testing.T) *statemap.StateMap {
	t.Helper()
	sm, err := statemap.NewStateMap("nucleotide", []string{"A", "C", "G", "T"}, map[string][]string{
		"N": {"A", "C", "G", "T"},
		"R": {"A", "G"},
	})
	require.NoError(t, err)
	return sm
}

func TestAllTrue(t *testing.T) {
	mask := statemask.AllTrue(4)
	require.Len(t, mask, 4)
	require.True(t, mask.Any())
	for _, v := range mask {
		require.True(t, v)
	}
}

func TestStateMaskMap_ObserveFullyDegenerateSymbol(t *testing.T) {
	sm := nucleotideMap(t)
	mm, err := statemask.NewStateMaskMap(sm)
	require.NoError(t, err)

	mask, err := mm.MaskOf("N")
	require.NoError(t, err)
	require.Equal(t, statemask.StateMask{true, true, true, true}, mask)
}

func TestStateMaskMap_ObserveBasicSymbol(t *testing.T) {
	sm := nucleotideMap(t)
	mm, err := statemask.NewStateMaskMap(sm)
	require.NoError(t, err)

	mask, err := mm.MaskOf("A")
	require.NoError(t, err)
	require.Equal(t, statemask.StateMask{true, false, false, false}, mask)
}

func TestStateMaskMap_ObservePartialDegenerateSymbol(t *testing.T) {
	sm := nucleotideMap(t)
	mm, err := statemask.NewStateMaskMap(sm)
	require.NoError(t, err)

	mask, err := mm.MaskOf("R")
	require.NoError(t, err)
	require.Equal(t, statemask.StateMask{true, false, true, false}, mask)
}

func TestStateMaskMap_Unobserved(t *testing.T) {
	sm := nucleotideMap(t)
	mm, err := statemask.NewStateMaskMap(sm)
	require.NoError(t, err)

	require.Equal(t, statemask.AllTrue(4), mm.Unobserved())
}

func TestStateMaskMap_NilStateMap(t *testing.T) {
	_, err := statemask.NewStateMaskMap(nil)
	require.ErrorIs(t, err, statemask.ErrNilStateMap)
}

func TestStateMaskMapSet_SymbolsToMasks(t *testing.T) {
	sm := nucleotideMap(t)
	set, err := statemask.NewStateMaskMapSet(
		[]string{"x", "y"},
		map[string]*statemap.StateMap{"x": sm, "y": sm},
	)
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, set.Variables())

	masks, err := set.SymbolsToMasks(map[string]string{"x": "A"})
	require.NoError(t, err)
	require.Equal(t, statemask.StateMask{true, false, false, false}, masks["x"])
	require.Equal(t, statemask.AllTrue(4), masks["y"]) // y unobserved
}

func TestStateMaskMapSet_UnknownVariable(t *testing.T) {
	sm := nucleotideMap(t)
	_, err := statemask.NewStateMaskMapSet([]string{"z"}, map[string]*statemap.StateMap{})
	require.ErrorIs(t, err, statemask.ErrUnknownVariable)
	_ = sm
}

func TestStateMaskMapSet_SymbolsToMasks_UnknownSymbol(t *testing.T) {
	sm := nucleotideMap(t)
	set, err := statemask.NewStateMaskMapSet([]string{"x"}, map[string]*statemap.StateMap{"x": sm})
	require.NoError(t, err)

	_, err = set.SymbolsToMasks(map[string]string{"x": "Z"})
	require.Error(t, err)
}
