package factor

import (
	"fmt"

	"github.com/katalvlaran/dfgraph/potential"
)

// FactorSet is an ordered collection of Factors, indexed by name, that
// a dfg.DFG re-estimates together during a learning iteration.
type FactorSet struct {
	order  []string
	byName map[string]*Factor
}

// NewFactorSet builds a FactorSet from factors, preserving the order
// they are given in. Factor names must be unique.
func NewFactorSet(factors ...*Factor) (*FactorSet, error) {
	fs := &FactorSet{
		order:  make([]string, 0, len(factors)),
		byName: make(map[string]*Factor, len(factors)),
	}
	for _, f := range factors {
		if _, exists := fs.byName[f.Name()]; exists {
			return nil, fmt.Errorf("factor.NewFactorSet: duplicate factor name %q", f.Name())
		}
		fs.byName[f.Name()] = f
		fs.order = append(fs.order, f.Name())
	}
	return fs, nil
}

// Len returns the number of factors in the set.
func (fs *FactorSet) Len() int { return len(fs.order) }

// Names returns the factor names in insertion order.
func (fs *FactorSet) Names() []string {
	out := make([]string, len(fs.order))
	copy(out, fs.order)
	return out
}

// Get returns the named factor, or nil if it is not in the set.
func (fs *FactorSet) Get(name string) *Factor {
	return fs.byName[name]
}

// SubmitCountsVec submits counts to the factors named in the map. A
// name absent from the set is an error; a factor in the set absent
// from countsByName is simply left untouched.
func (fs *FactorSet) SubmitCountsVec(countsByName map[string]*potential.Matrix) error {
	for name, counts := range countsByName {
		f, ok := fs.byName[name]
		if !ok {
			return fmt.Errorf("factor.FactorSet.SubmitCountsVec: unknown factor %q", name)
		}
		if err := f.SubmitCounts(counts); err != nil {
			return err
		}
	}
	return nil
}

// OptimizeAll calls Optimize on every factor in the set, in order.
// It returns Success if at least one factor reported Success and
// Unchanged if every factor was clean, and stops at the first factor
// that returns an error.
func (fs *FactorSet) OptimizeAll() (OptimizeResult, error) {
	result := Unchanged
	for _, name := range fs.order {
		r, err := fs.byName[name].Optimize()
		if err != nil {
			return 0, fmt.Errorf("factor.FactorSet.OptimizeAll: %w", err)
		}
		if r == Success {
			result = Success
		}
	}
	return result, nil
}

// ClearAll clears the count accumulator of every factor in the set.
func (fs *FactorSet) ClearAll() {
	for _, name := range fs.order {
		fs.byName[name].ClearCounts()
	}
}

// Potentials returns the current potential of every factor, in
// insertion order.
func (fs *FactorSet) Potentials() []*potential.Matrix {
	out := make([]*potential.Matrix, len(fs.order))
	for i, name := range fs.order {
		out[i] = fs.byName[name].Potential()
	}
	return out
}
