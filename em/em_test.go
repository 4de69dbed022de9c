package em_test

import (
	"testing"

	"github.com/katalvlaran/dfgraph/dfg"
	"github.com/katalvlaran/dfgraph/dfginfo"
	"github.com/katalvlaran/dfgraph/em"
	"github.com/katalvlaran/dfgraph/factor"
	"github.com/katalvlaran/dfgraph/potential"
	"github.com/katalvlaran/dfgraph/statemap"
	"github.com/katalvlaran/dfgraph/statemask"
	"github.com/stretchr/testify/require"
)

// buildSingleVariable wires a one-variable, one-unary-factor DFG
// together (StateMap {A,C}, GlobalNorm prior [0.5,0.5]) used by the EM
// convergence test below.
func buildSingleVariable(t *testing.T) (*dfginfo.DfgInfo, *factor.FactorSet) {
	t.Helper()

	sm, err := statemap.NewStateMap("binary", []string{"A", "C"}, nil)
	require.NoError(t, err)

	prior, err := potential.NewMatrixFromRows([][]float64{{0.5, 0.5}})
	require.NoError(t, err)
	g, err := dfg.NewDFG([]int{2}, []dfg.FactorSpec{{Neighbors: []int{0}, Potential: prior}})
	require.NoError(t, err)

	f, err := factor.NewFactor("prior", factor.GlobalNorm, prior.Clone(), nil)
	require.NoError(t, err)
	fs, err := factor.NewFactorSet(f)
	require.NoError(t, err)

	maskSet, err := statemask.NewStateMaskMapSet([]string{"x"}, map[string]*statemap.StateMap{"x": sm})
	require.NoError(t, err)

	info, err := dfginfo.NewDfgInfo(g, maskSet, []string{"x"}, []string{"prior"}, []*statemap.StateMap{sm})
	require.NoError(t, err)

	return info, fs
}

// TestRunEM_ConvergesToObservedFrequencies reproduces three observed
// "A" and one observed "C": EM should drive the unary prior to the
// empirical frequency [0.75,0.25] and converge once that potential is
// a fixed point of another E/M round.
func TestRunEM_ConvergesToObservedFrequencies(t *testing.T) {
	info, fs := buildSingleVariable(t)

	data := []em.DataPoint{
		{ID: "1", Observations: map[string]string{"x": "A"}},
		{ID: "2", Observations: map[string]string{"x": "A"}},
		{ID: "3", Observations: map[string]string{"x": "A"}},
		{ID: "4", Observations: map[string]string{"x": "C"}},
	}

	report, err := em.RunEM(info, fs, data, em.Config{MaxIterations: 10, Tolerance: 1e-6})
	require.NoError(t, err)
	require.True(t, report.Converged)
	require.Equal(t, 3, report.Iterations)
	require.Len(t, report.LogLikelihoods, 3)

	pot := fs.Get("prior").Potential()
	v0, _ := pot.At(0, 0)
	v1, _ := pot.At(0, 1)
	require.InDelta(t, 0.75, v0, 1e-9)
	require.InDelta(t, 0.25, v1, 1e-9)
}

func TestRunEM_Parallel_MatchesSequential(t *testing.T) {
	info, fs := buildSingleVariable(t)
	data := []em.DataPoint{
		{ID: "1", Observations: map[string]string{"x": "A"}},
		{ID: "2", Observations: map[string]string{"x": "A"}},
		{ID: "3", Observations: map[string]string{"x": "A"}},
		{ID: "4", Observations: map[string]string{"x": "C"}},
	}

	report, err := em.RunEM(info, fs, data, em.Config{MaxIterations: 10, Tolerance: 1e-6, Parallel: true, Workers: 2})
	require.NoError(t, err)
	require.True(t, report.Converged)

	pot := fs.Get("prior").Potential()
	v0, _ := pot.At(0, 0)
	require.InDelta(t, 0.75, v0, 1e-9)
}

func TestRunEM_NoData(t *testing.T) {
	info, fs := buildSingleVariable(t)
	_, err := em.RunEM(info, fs, nil, em.Config{MaxIterations: 5, Tolerance: 1e-6})
	require.ErrorIs(t, err, em.ErrNoData)
}

func TestRunEM_InvalidConfig(t *testing.T) {
	info, fs := buildSingleVariable(t)
	data := []em.DataPoint{{ID: "1", Observations: map[string]string{"x": "A"}}}

	_, err := em.RunEM(info, fs, data, em.Config{MaxIterations: 0, Tolerance: 1e-6})
	require.ErrorIs(t, err, em.ErrInvalidConfig)

	_, err = em.RunEM(info, fs, data, em.Config{MaxIterations: 5, Tolerance: 1e-6, Parallel: true, Workers: 0})
	require.ErrorIs(t, err, em.ErrInvalidConfig)
}

func TestRunEM_UnknownSymbolInObservation(t *testing.T) {
	info, fs := buildSingleVariable(t)
	data := []em.DataPoint{{ID: "1", Observations: map[string]string{"x": "Z"}}}

	_, err := em.RunEM(info, fs, data, em.Config{MaxIterations: 5, Tolerance: 1e-6})
	require.Error(t, err)
}
