package potential_test

import (
	"testing"

	"github.com/katalvlaran/dfgraph/potential"
	"github.com/stretchr/testify/require"
)

// TestNewMatrix_InvalidDimensions rejects non-positive dimensions.
func TestNewMatrix_InvalidDimensions(t *testing.T) {
	_, err := potential.NewMatrix(0, 2)
	require.ErrorIs(t, err, potential.ErrInvalidDimensions)

	_, err = potential.NewMatrix(2, -1)
	require.ErrorIs(t, err, potential.ErrInvalidDimensions)
}

// TestMatrix_SetAt round-trips a value through Set/At.
func TestMatrix_SetAt(t *testing.T) {
	m, err := potential.NewMatrix(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 7.5))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.5, v)
}

// TestMatrix_OutOfBounds ensures bounds are checked on both axes.
func TestMatrix_OutOfBounds(t *testing.T) {
	m, err := potential.NewMatrix(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, potential.ErrIndexOutOfBounds)

	err = m.Set(0, 2, 1.0)
	require.ErrorIs(t, err, potential.ErrIndexOutOfBounds)
}

// TestMatrix_CloneIndependence ensures Clone does not alias storage.
func TestMatrix_CloneIndependence(t *testing.T) {
	m, err := potential.NewMatrix(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1.0))

	clone := m.Clone()
	require.NoError(t, clone.Set(0, 0, 99.0))

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v) // original unaffected by mutation of clone
}

// TestMatrix_RowColTotal checks sum reductions against a known 2x2 matrix.
func TestMatrix_RowColTotal(t *testing.T) {
	m, err := potential.NewMatrixFromRows([][]float64{
		{1, 2},
		{3, 4},
	})
	require.NoError(t, err)

	r0, err := m.RowSum(0)
	require.NoError(t, err)
	require.Equal(t, 3.0, r0)

	c1, err := m.ColSum(1)
	require.NoError(t, err)
	require.Equal(t, 6.0, c1)

	require.Equal(t, 10.0, m.Total())
}

// TestMatrix_AddInPlace_ShapeMismatch rejects mismatched shapes.
func TestMatrix_AddInPlace_ShapeMismatch(t *testing.T) {
	a, err := potential.NewMatrix(2, 2)
	require.NoError(t, err)
	b, err := potential.NewMatrix(3, 3)
	require.NoError(t, err)

	err = a.AddInPlace(b)
	require.ErrorIs(t, err, potential.ErrShapeMismatch)
}

// TestMatrix_AddScale checks element-wise accumulation and scaling.
func TestMatrix_AddScale(t *testing.T) {
	a, err := potential.NewMatrixFromRows([][]float64{{1, 1}, {1, 1}})
	require.NoError(t, err)
	b, err := potential.NewMatrixFromRows([][]float64{{9, 1}, {2, 8}})
	require.NoError(t, err)

	require.NoError(t, a.AddInPlace(b))
	v, err := a.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 10.0, v)

	a.ScaleInPlace(0.5)
	v, err = a.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 4.5, v)
}
