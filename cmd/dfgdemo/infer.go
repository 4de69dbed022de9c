package main

import (
	"fmt"

	"github.com/katalvlaran/dfgraph/dfg"
	"github.com/katalvlaran/dfgraph/potential"
	"github.com/katalvlaran/dfgraph/statemask"
	"github.com/spf13/cobra"
)

var inferFlags = struct {
	scenario string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "infer",
		Short:   "Run a built-in sum-product / max-product scenario",
		Example: "  dfgdemo infer --scenario s2",
		RunE:    runInfer,
	}
	cmd.Flags().StringVar(&inferFlags.scenario, "scenario", "s1", "one of: s1, s2, s3")
	rootCmd.AddCommand(cmd)
}

// buildChain constructs the three-variable binary chain
// V0-F01-V1-F12-V2 used by scenarios s1 and s2.
func buildChain() (*dfg.DFG, error) {
	prior, err := potential.NewMatrixFromRows([][]float64{{0.5, 0.5}})
	if err != nil {
		return nil, err
	}
	f01, err := potential.NewMatrixFromRows([][]float64{{0.7, 0.3}, {0.2, 0.8}})
	if err != nil {
		return nil, err
	}
	f12, err := potential.NewMatrixFromRows([][]float64{{0.9, 0.1}, {0.4, 0.6}})
	if err != nil {
		return nil, err
	}
	return dfg.NewDFG([]int{2, 2, 2}, []dfg.FactorSpec{
		{Neighbors: []int{0}, Potential: prior},
		{Neighbors: []int{0, 1}, Potential: f01},
		{Neighbors: []int{1, 2}, Potential: f12},
	})
}

func runInfer(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	var g *dfg.DFG
	var masks []statemask.StateMask
	var err error

	switch inferFlags.scenario {
	case "s1":
		g, err = buildChain()
		if err != nil {
			return err
		}
		masks = []statemask.StateMask{statemask.AllTrue(2), statemask.AllTrue(2), statemask.AllTrue(2)}
	case "s2":
		g, err = buildChain()
		if err != nil {
			return err
		}
		masks = []statemask.StateMask{statemask.AllTrue(2), statemask.AllTrue(2), {false, true}}
	case "s3":
		pot, potErr := potential.NewMatrixFromRows([][]float64{{0.1, 0.2, 0.3, 0.4}})
		if potErr != nil {
			return potErr
		}
		g, err = dfg.NewDFG([]int{4}, []dfg.FactorSpec{{Neighbors: []int{0}, Potential: pot}})
		if err != nil {
			return err
		}
		masks = []statemask.StateMask{{true, false, false, false}}
	default:
		return fmt.Errorf("dfgdemo infer: unknown scenario %q", inferFlags.scenario)
	}

	logger.Info("running sum-product", "scenario", inferFlags.scenario)
	if err := g.RunSumProduct(masks); err != nil {
		return err
	}

	z, err := g.NormalizationConstant()
	if err != nil {
		return err
	}
	fmt.Printf("Z = %g\n", z)

	marginals, err := g.VariableMarginals()
	if err != nil {
		return err
	}
	for v, m := range marginals {
		fmt.Printf("marginal(V%d) = %v\n", v, m)
	}

	states, logProb, err := g.RunMaxProduct(masks)
	if err != nil {
		return err
	}
	fmt.Printf("MAP = %v (log-prob %g)\n", states, logProb)

	return nil
}
