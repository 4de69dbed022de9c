package statemap

import "fmt"

// MaxCompositeAlphabet is the hard cap on the number of composite
// (basic + meta) states a multi-state StateMap may allocate. Beyond
// this, NewMultiStateMap fails with ErrAlphabetTooLarge rather than
// building the full degeneracy table.
const MaxCompositeAlphabet = 100_000

// NewMultiStateMap builds the n-fold Cartesian power of base: a
// composite StateMap whose basic states are all n-tuples of base's
// basic states, and whose meta-states are every tuple with at least
// one meta-component, its degeneracy vector the Cartesian product of
// the per-position degeneracies.
//
// Fails with ErrAlphabetTooLarge before allocating if the resulting
// composite alphabet (base.MetaStateCount()^n) would exceed
// MaxCompositeAlphabet.
func NewMultiStateMap(base *StateMap, n int) (*StateMap, error) {
	if n < 1 {
		return nil, ErrInvalidMultiplicity
	}
	if n == 1 {
		return base, nil
	}

	metaBase := base.MetaStateCount()
	basicBase := base.StateCount()

	metaCombos, err := boundedPow(metaBase, n)
	if err != nil {
		return nil, fmt.Errorf("statemap %q^%d: %w", base.Name(), n, err)
	}
	basicCombos, err := boundedPow(basicBase, n)
	if err != nil {
		return nil, fmt.Errorf("statemap %q^%d: %w", base.Name(), n, err)
	}

	symbolSize := base.SymbolSize() * n
	name := fmt.Sprintf("%s^%d", base.Name(), n)

	stateToSymbol := make([]string, 0, metaCombos)
	symbolToState := make(map[string]int, metaCombos)
	degeneracy := make([][]int, 0, metaCombos)

	// Basic composite states: every tuple of base's basic states, in
	// mixed-radix order, so indices are deterministic.
	for i := 0; i < basicCombos; i++ {
		tuple := decodeMixedRadix(i, n, basicBase)
		sym, serr := tupleSymbol(base, tuple)
		if serr != nil {
			return nil, serr
		}
		symbolToState[sym] = len(stateToSymbol)
		stateToSymbol = append(stateToSymbol, sym)
		degeneracy = append(degeneracy, []int{i}) // a basic composite state's degeneracy is itself
	}

	// Meta composite states: every tuple over [0, metaBase) with at
	// least one meta-component (i.e. not already enumerated above).
	for j := 0; j < metaCombos; j++ {
		tuple := decodeMixedRadix(j, n, metaBase)
		if allBelow(tuple, basicBase) {
			continue // pure-basic tuple, already assigned above
		}

		sym, serr := tupleSymbol(base, tuple)
		if serr != nil {
			return nil, serr
		}

		deg, derr := cartesianDegeneracy(base, tuple, basicBase)
		if derr != nil {
			return nil, derr
		}

		symbolToState[sym] = len(stateToSymbol)
		stateToSymbol = append(stateToSymbol, sym)
		degeneracy = append(degeneracy, deg)
	}

	return &StateMap{
		name:           name,
		symbolSize:     symbolSize,
		stateCount:     basicCombos,
		metaStateCount: len(stateToSymbol),
		symbolToState:  symbolToState,
		stateToSymbol:  stateToSymbol,
		degeneracy:     degeneracy,
	}, nil
}

// tupleSymbol concatenates the per-position symbols of a component
// tuple drawn from base's state space.
func tupleSymbol(base *StateMap, tuple []int) (string, error) {
	sym := ""
	for _, c := range tuple {
		s, err := base.SymbolOf(c)
		if err != nil {
			return "", err
		}
		sym += s
	}
	return sym, nil
}

// cartesianDegeneracy computes the degeneracy vector of a composite
// meta-state as the Cartesian product of each position's degeneracy
// in base, re-encoded as indices into the basicBase^n basic composite
// state space.
func cartesianDegeneracy(base *StateMap, tuple []int, basicBase int) ([]int, error) {
	n := len(tuple)
	perPosition := make([][]int, n)
	for i, c := range tuple {
		deg, err := base.DegeneracyStates(c)
		if err != nil {
			return nil, err
		}
		perPosition[i] = deg
	}

	// Cartesian product via mixed-radix counters over the (variable
	// length) per-position degeneracy slices.
	counters := make([]int, n)
	out := make([]int, 0)
	for {
		composite := make([]int, n)
		for i := 0; i < n; i++ {
			composite[i] = perPosition[i][counters[i]]
		}
		out = append(out, encodeMixedRadix(composite, basicBase))

		// advance counters (odometer), least-significant position last
		pos := n - 1
		for pos >= 0 {
			counters[pos]++
			if counters[pos] < len(perPosition[pos]) {
				break
			}
			counters[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}

	return out, nil
}

// boundedPow returns base^exp, failing with ErrAlphabetTooLarge as
// soon as the running product would exceed MaxCompositeAlphabet,
// before any overflow can occur.
func boundedPow(base, exp int) (int, error) {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
		if result > MaxCompositeAlphabet {
			return 0, ErrAlphabetTooLarge
		}
	}
	return result, nil
}

// encodeMixedRadix encodes tuple (each component in [0, radix)) as a
// single index, position 0 most significant.
func encodeMixedRadix(tuple []int, radix int) int {
	idx := 0
	for _, c := range tuple {
		idx = idx*radix + c
	}
	return idx
}

// decodeMixedRadix decodes idx into an n-tuple with each component in
// [0, radix), the inverse of encodeMixedRadix.
func decodeMixedRadix(idx, n, radix int) []int {
	tuple := make([]int, n)
	for i := n - 1; i >= 0; i-- {
		tuple[i] = idx % radix
		idx /= radix
	}
	return tuple
}

// allBelow reports whether every component of tuple is < bound.
func allBelow(tuple []int, bound int) bool {
	for _, c := range tuple {
		if c >= bound {
			return false
		}
	}
	return true
}
