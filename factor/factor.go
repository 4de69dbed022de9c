package factor

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dfgraph/potential"
)

// normTolerance is the numeric tolerance used to validate an initial
// potential's normalization.
const normTolerance = 1e-6

// Family selects the normalization rule a Factor's Optimize applies to
// accumulated (counts + pseudocounts).
type Family int

const (
	// GlobalNorm normalizes so the entire matrix sums to one.
	GlobalNorm Family = iota
	// RowNorm normalizes so every row sums to one.
	RowNorm
	// ColumnNorm normalizes so every column sums to one.
	ColumnNorm
)

// String renders the Family's external name.
func (f Family) String() string {
	switch f {
	case GlobalNorm:
		return "GlobalNorm"
	case RowNorm:
		return "RowNorm"
	case ColumnNorm:
		return "ColumnNorm"
	default:
		return "Unknown"
	}
}

// OptimizeResult reports what Optimize did.
type OptimizeResult int

const (
	// Unchanged means Optimize ran on a clean (no new counts) Factor and left the potential untouched.
	Unchanged OptimizeResult = iota
	// Success means Optimize normalized newly accumulated counts into a new potential.
	Success
)

// Factor is a potential table over one variable (unary, shape 1×S) or
// an ordered pair of variables (pairwise, shape R×C), together with
// the bookkeeping needed to re-estimate it from submitted expectation
// counts: a pseudocount matrix, a running count accumulator, a dirty
// flag, and the Family tag selecting Optimize's normalization rule.
type Factor struct {
	name   string
	family Family

	potential   *potential.Matrix
	pseudoCount *potential.Matrix
	counts      *potential.Matrix
	dirty       bool
}

// NewFactor constructs a Factor. m is the initial potential and must
// already satisfy family's normalization constraint within tolerance
// (ErrNotNormalized otherwise). pseudo is an optional pseudocount
// matrix of identical shape to m (nil means all-zero pseudocounts).
func NewFactor(name string, family Family, m *potential.Matrix, pseudo *potential.Matrix) (*Factor, error) {
	if family != GlobalNorm && family != RowNorm && family != ColumnNorm {
		return nil, ErrUnknownFamily
	}
	if m == nil {
		return nil, fmt.Errorf("factor %q: potential: %w", name, ErrMisshapen)
	}
	if err := checkNormalized(family, m); err != nil {
		return nil, fmt.Errorf("factor %q: %w", name, err)
	}

	if pseudo == nil {
		var err error
		pseudo, err = potential.NewMatrix(m.Rows(), m.Cols())
		if err != nil {
			return nil, err
		}
	} else if !m.SameShape(pseudo) {
		return nil, fmt.Errorf("factor %q: pseudocount: %w", name, ErrMisshapen)
	}

	counts, err := potential.NewMatrix(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}

	return &Factor{
		name:        name,
		family:      family,
		potential:   m,
		pseudoCount: pseudo,
		counts:      counts,
		dirty:       false,
	}, nil
}

// Name returns the factor's name.
func (f *Factor) Name() string { return f.name }

// Family returns the factor's normalization family.
func (f *Factor) Family() Family { return f.family }

// Potential returns the factor's current potential. The returned
// matrix is owned by f and must not be mutated by the caller.
func (f *Factor) Potential() *potential.Matrix { return f.potential }

// SubmitCounts element-wise adds counts into the internal accumulator
// and marks the factor dirty. counts must match the potential's shape.
func (f *Factor) SubmitCounts(counts *potential.Matrix) error {
	if err := f.counts.AddInPlace(counts); err != nil {
		return fmt.Errorf("factor %q: SubmitCounts: %w", f.name, err)
	}
	f.dirty = true
	return nil
}

// ClearCounts zeroes the internal count accumulator.
func (f *Factor) ClearCounts() {
	f.counts.Zero()
}

// Optimize re-estimates the potential from accumulated counts. If the
// factor is clean (no counts submitted since the last Optimize), it
// returns Unchanged and does nothing. Otherwise it normalizes
// (counts + pseudocounts) per family, stores the result as the new
// potential, clears the dirty flag, and returns Success — or, if a
// required normalizing group (row, column, or the whole matrix) sums
// to zero, returns ErrZeroSum and leaves the potential and dirty flag
// untouched.
func (f *Factor) Optimize() (OptimizeResult, error) {
	if !f.dirty {
		return Unchanged, nil
	}

	combined := f.counts.Clone()
	if err := combined.AddInPlace(f.pseudoCount); err != nil {
		return 0, fmt.Errorf("factor %q: Optimize: %w", f.name, err)
	}

	if err := normalize(f.family, combined); err != nil {
		return 0, fmt.Errorf("factor %q: Optimize: %w", f.name, err)
	}

	f.potential = combined
	f.dirty = false
	return Success, nil
}

// checkNormalized validates m satisfies family's normalization
// constraint within normTolerance.
func checkNormalized(family Family, m *potential.Matrix) error {
	switch family {
	case GlobalNorm:
		if math.Abs(m.Total()-1.0) > normTolerance {
			return ErrNotNormalized
		}
	case RowNorm:
		for i := 0; i < m.Rows(); i++ {
			sum, _ := m.RowSum(i)
			if math.Abs(sum-1.0) > normTolerance {
				return ErrNotNormalized
			}
		}
	case ColumnNorm:
		for j := 0; j < m.Cols(); j++ {
			sum, _ := m.ColSum(j)
			if math.Abs(sum-1.0) > normTolerance {
				return ErrNotNormalized
			}
		}
	default:
		return ErrUnknownFamily
	}
	return nil
}

// normalize scales m in place per family's rule. Validates every
// required group sums to a nonzero value before mutating anything, so
// a zero-sum group fails atomically rather than leaving m partially
// normalized.
func normalize(family Family, m *potential.Matrix) error {
	switch family {
	case GlobalNorm:
		total := m.Total()
		if total == 0 {
			return ErrZeroSum
		}
		m.ScaleInPlace(1.0 / total)

	case RowNorm:
		sums := make([]float64, m.Rows())
		for i := range sums {
			sum, _ := m.RowSum(i)
			if sum == 0 {
				return ErrZeroSum
			}
			sums[i] = sum
		}
		for i, sum := range sums {
			for j := 0; j < m.Cols(); j++ {
				v, _ := m.At(i, j)
				_ = m.Set(i, j, v/sum)
			}
		}

	case ColumnNorm:
		sums := make([]float64, m.Cols())
		for j := range sums {
			sum, _ := m.ColSum(j)
			if sum == 0 {
				return ErrZeroSum
			}
			sums[j] = sum
		}
		for j, sum := range sums {
			for i := 0; i < m.Rows(); i++ {
				v, _ := m.At(i, j)
				_ = m.Set(i, j, v/sum)
			}
		}

	default:
		return ErrUnknownFamily
	}
	return nil
}
