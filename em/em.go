package em

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/dfgraph/dfg"
	"github.com/katalvlaran/dfgraph/dfginfo"
	"github.com/katalvlaran/dfgraph/factor"
	"github.com/katalvlaran/dfgraph/potential"
)

// DataPoint is one observed training example: an identifying id and a
// set of (variable name, symbol) observations. A variable absent from
// Observations is treated as unobserved.
type DataPoint struct {
	ID           string
	Observations map[string]string
}

// Report summarizes a completed RunEM call.
type Report struct {
	Iterations     int
	LogLikelihoods []float64 // per iteration, total log-likelihood under the potentials that iteration started from
	Converged      bool      // true if the loop stopped before MaxIterations on Tolerance
}

// RunEM runs the EM outer loop against info's DFG and fs's factors.
// Each iteration: clear every factor's counts, accumulate expectation
// counts over every data point (via AccumulateCounts against the
// factor order named by info.FactorNames()), submit the aggregate to
// fs, optimize, and push the new potentials back into the DFG. The
// loop stops after cfg.MaxIterations iterations or once the total
// log-likelihood improves by less than cfg.Tolerance between
// successive iterations.
func RunEM(info *dfginfo.DfgInfo, fs *factor.FactorSet, data []DataPoint, cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	if len(data) == 0 {
		return Report{}, ErrNoData
	}

	graph := info.DFG()
	factorNames := info.FactorNames()

	report := Report{LogLikelihoods: make([]float64, 0, cfg.MaxIterations)}
	prevLL := math.Inf(-1)

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		fs.ClearAll()

		counts, err := newZeroCounts(fs, factorNames)
		if err != nil {
			return report, err
		}

		var totalLL float64
		if cfg.Parallel {
			totalLL, err = accumulateParallel(graph, info, data, counts, cfg.Workers)
		} else {
			totalLL, err = accumulateSequential(graph, info, data, counts)
		}
		if err != nil {
			return report, err
		}

		countsByName := make(map[string]*potential.Matrix, len(factorNames))
		for i, name := range factorNames {
			countsByName[name] = counts[i]
		}
		if err := fs.SubmitCountsVec(countsByName); err != nil {
			return report, err
		}
		if _, err := fs.OptimizeAll(); err != nil {
			return report, err
		}

		newIdx := make([]int, len(factorNames))
		newMats := make([]*potential.Matrix, len(factorNames))
		for i, name := range factorNames {
			newIdx[i] = i
			newMats[i] = fs.Get(name).Potential()
		}
		if err := graph.ResetFactorPotentials(newMats, newIdx); err != nil {
			return report, err
		}

		report.Iterations = iter
		report.LogLikelihoods = append(report.LogLikelihoods, totalLL)

		slog.Debug("em iteration complete", "iteration", iter, "log_likelihood", totalLL)

		if iter > 1 && totalLL-prevLL < cfg.Tolerance {
			report.Converged = true
			prevLL = totalLL
			break
		}
		prevLL = totalLL
	}

	return report, nil
}

// newZeroCounts allocates one zero matrix per factor, shaped like that
// factor's current potential, in the order named by factorNames.
func newZeroCounts(fs *factor.FactorSet, factorNames []string) ([]*potential.Matrix, error) {
	out := make([]*potential.Matrix, len(factorNames))
	for i, name := range factorNames {
		f := fs.Get(name)
		if f == nil {
			return nil, fmt.Errorf("em: factor %q not found in FactorSet", name)
		}
		m, err := potential.NewMatrix(f.Potential().Rows(), f.Potential().Cols())
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// accumulateSequential runs AccumulateCounts for every data point
// against graph directly, summing each point's log(Z) into the
// returned total log-likelihood.
func accumulateSequential(graph *dfg.DFG, info *dfginfo.DfgInfo, data []DataPoint, counts []*potential.Matrix) (float64, error) {
	var totalLL float64
	for _, dp := range data {
		masks, err := info.ObservationToMasks(dp.Observations)
		if err != nil {
			return 0, fmt.Errorf("em: data point %q: %w", dp.ID, err)
		}
		if err := graph.AccumulateCounts(masks, counts); err != nil {
			return 0, fmt.Errorf("em: data point %q: %w", dp.ID, err)
		}
		z, err := graph.NormalizationConstant()
		if err != nil {
			return 0, fmt.Errorf("em: data point %q: %w", dp.ID, err)
		}
		totalLL += math.Log(z)
	}
	return totalLL, nil
}
