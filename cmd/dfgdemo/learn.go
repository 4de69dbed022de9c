package main

import (
	"fmt"

	"github.com/katalvlaran/dfgraph/dfg"
	"github.com/katalvlaran/dfgraph/dfginfo"
	"github.com/katalvlaran/dfgraph/em"
	"github.com/katalvlaran/dfgraph/factor"
	"github.com/katalvlaran/dfgraph/potential"
	"github.com/katalvlaran/dfgraph/statemap"
	"github.com/katalvlaran/dfgraph/statemask"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Run EM until convergence re-estimating a RowNorm transition factor",
		RunE:  runLearn,
	}
	rootCmd.AddCommand(cmd)
}

// pairCounts fully observes a (u,v) pair, repeated the given number of
// times, so accumulated expectation counts equal exactly [[9,1],[2,8]].
var pairCounts = []struct {
	u, v  string
	count int
}{
	{"0", "0", 9},
	{"0", "1", 1},
	{"1", "0", 2},
	{"1", "1", 8},
}

func runLearn(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	sm, err := statemap.NewStateMap("binary", []string{"0", "1"}, nil)
	if err != nil {
		return err
	}

	initial, err := potential.NewMatrixFromRows([][]float64{{0.5, 0.5}, {0.5, 0.5}})
	if err != nil {
		return err
	}
	pseudo, err := potential.NewMatrixFromRows([][]float64{{1, 1}, {1, 1}})
	if err != nil {
		return err
	}

	graph, err := dfg.NewDFG([]int{2, 2}, []dfg.FactorSpec{{Neighbors: []int{0, 1}, Potential: initial.Clone()}})
	if err != nil {
		return err
	}

	f, err := factor.NewFactor("transition", factor.RowNorm, initial, pseudo)
	if err != nil {
		return err
	}
	fs, err := factor.NewFactorSet(f)
	if err != nil {
		return err
	}

	maskSet, err := statemask.NewStateMaskMapSet(
		[]string{"u", "v"},
		map[string]*statemap.StateMap{"u": sm, "v": sm},
	)
	if err != nil {
		return err
	}

	info, err := dfginfo.NewDfgInfo(graph, maskSet, []string{"u", "v"}, []string{"transition"}, []*statemap.StateMap{sm, sm})
	if err != nil {
		return err
	}

	var data []em.DataPoint
	id := 0
	for _, pc := range pairCounts {
		for i := 0; i < pc.count; i++ {
			id++
			data = append(data, em.DataPoint{
				ID:           fmt.Sprintf("d%d", id),
				Observations: map[string]string{"u": pc.u, "v": pc.v},
			})
		}
	}

	logger.Info("running EM", "data_points", len(data))
	report, err := em.RunEM(info, fs, data, em.Config{MaxIterations: 20, Tolerance: 1e-9})
	if err != nil {
		return err
	}

	fmt.Printf("converged=%v iterations=%d\n", report.Converged, report.Iterations)
	fmt.Printf("potential =\n%s", fs.Get("transition").Potential())
	return nil
}
