package statemap_test

import (
	"testing"

	"github.com/katalvlaran/dfgraph/statemap"
	"github.com/stretchr/testify/require"
)

func baseACMap(t *testing.T) *statemap.StateMap {
	t.Helper()
	sm, err := statemap.NewStateMap("ac", []string{"A", "C"}, map[string][]string{"N": {"A", "C"}})
	require.NoError(t, err)
	return sm
}

// TestNewMultiStateMap_Order1 checks that n=1 returns the base map unchanged.
func TestNewMultiStateMap_Order1(t *testing.T) {
	base := baseACMap(t)
	composite, err := statemap.NewMultiStateMap(base, 1)
	require.NoError(t, err)
	require.Same(t, base, composite)
}

// TestNewMultiStateMap_InvalidMultiplicity rejects n < 1.
func TestNewMultiStateMap_InvalidMultiplicity(t *testing.T) {
	base := baseACMap(t)
	_, err := statemap.NewMultiStateMap(base, 0)
	require.ErrorIs(t, err, statemap.ErrInvalidMultiplicity)
}

// TestNewMultiStateMap_Order2 builds the diploid-style tensor square of a
// 2-symbol base with one fully-degenerate meta-symbol, and checks basic
// states, composite meta-symbols, and their Cartesian-product degeneracy.
func TestNewMultiStateMap_Order2(t *testing.T) {
	base := baseACMap(t)
	composite, err := statemap.NewMultiStateMap(base, 2)
	require.NoError(t, err)

	require.Equal(t, 4, composite.StateCount())      // AA, AC, CA, CC
	require.Equal(t, 9, composite.MetaStateCount())  // 4 basic + 5 meta (AN,CN,NA,NC,NN)
	require.Equal(t, 2, composite.SymbolSize())

	for _, sym := range []string{"AA", "AC", "CA", "CC"} {
		state, err := composite.StateOf(sym)
		require.NoError(t, err)
		deg, err := composite.DegeneracyOf(sym)
		require.NoError(t, err)
		require.Equal(t, []string{sym}, deg) // a basic composite state's degeneracy is itself
		require.Less(t, state, composite.StateCount())
	}

	deg, err := composite.DegeneracyOf("AN")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"AA", "AC"}, deg)

	deg, err = composite.DegeneracyOf("NA")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"AA", "CA"}, deg)

	deg, err = composite.DegeneracyOf("NN")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"AA", "AC", "CA", "CC"}, deg)
}

// TestNewMultiStateMap_AlphabetTooLarge ensures the composite cap is
// enforced before any allocation.
func TestNewMultiStateMap_AlphabetTooLarge(t *testing.T) {
	// 12 basic symbols of length 1 plus no meta-symbols: metaStateCount=12.
	symbols := make([]string, 12)
	letters := "ABCDEFGHIJKL"
	for i := range symbols {
		symbols[i] = string(letters[i])
	}
	base, err := statemap.NewStateMap("big", symbols, nil)
	require.NoError(t, err)

	// 12^5 = 248832 > 100,000.
	_, err = statemap.NewMultiStateMap(base, 5)
	require.ErrorIs(t, err, statemap.ErrAlphabetTooLarge)
}
