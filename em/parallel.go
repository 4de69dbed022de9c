package em

import (
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/dfgraph/dfg"
	"github.com/katalvlaran/dfgraph/dfginfo"
	"github.com/katalvlaran/dfgraph/potential"
)

// accumulateParallel distributes data points across up to workers
// goroutines, each running AccumulateCounts against its own dfg.DFG
// clone into a disjoint set of per-worker count accumulators; results
// are summed into counts only after every goroutine has joined via the
// wait group, so no shared DFG or matrix is ever written concurrently.
func accumulateParallel(graph *dfg.DFG, info *dfginfo.DfgInfo, data []DataPoint, counts []*potential.Matrix, workers int) (float64, error) {
	type result struct {
		counts []*potential.Matrix
		ll     float64
		err    error
	}

	results := make([]result, len(data))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, dp := range data {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, dp DataPoint) {
			defer wg.Done()
			defer func() { <-sem }()

			localGraph := graph.Clone()
			localCounts := make([]*potential.Matrix, len(counts))
			for j, c := range counts {
				m, err := potential.NewMatrix(c.Rows(), c.Cols())
				if err != nil {
					results[i] = result{err: err}
					return
				}
				localCounts[j] = m
			}

			masks, err := info.ObservationToMasks(dp.Observations)
			if err != nil {
				results[i] = result{err: fmt.Errorf("em: data point %q: %w", dp.ID, err)}
				return
			}
			if err := localGraph.AccumulateCounts(masks, localCounts); err != nil {
				results[i] = result{err: fmt.Errorf("em: data point %q: %w", dp.ID, err)}
				return
			}
			z, err := localGraph.NormalizationConstant()
			if err != nil {
				results[i] = result{err: fmt.Errorf("em: data point %q: %w", dp.ID, err)}
				return
			}

			results[i] = result{counts: localCounts, ll: math.Log(z)}
		}(i, dp)
	}

	wg.Wait()

	var totalLL float64
	for _, r := range results {
		if r.err != nil {
			return 0, r.err
		}
		for j, m := range r.counts {
			if err := counts[j].AddInPlace(m); err != nil {
				return 0, err
			}
		}
		totalLL += r.ll
	}
	return totalLL, nil
}
