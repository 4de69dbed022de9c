package dfg

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dfgraph/statemask"
)

// rescaleMax divides vec by its own maximum element, if positive,
// returning the log of that maximum. Used by max-product in place of
// rescale's sum-based version, since the aggregation operator is max.
func rescaleMax(vec []float64) float64 {
	maxV := 0.0
	for _, x := range vec {
		if x > maxV {
			maxV = x
		}
	}
	if maxV <= 0 {
		return 0
	}
	for i := range vec {
		vec[i] /= maxV
	}
	return math.Log(maxV)
}

// backpointer records, for a pairwise factor's inward message toward
// its parent variable, the child variable's argmax state for every
// state of the parent.
type backpointer struct {
	childVar int
	argmax   []int // parent state -> child state
}

// RunMaxProduct computes the joint MAP assignment under masks as
// per-variable evidence via a single inward max-product pass (with
// per-pairwise-factor argmax backpointers) followed by a top-down
// traceback from the root. It returns the assignment (one state per
// variable, in variable index order) and the unnormalized log-
// probability of that assignment under the graph's potentials.
func (d *DFG) RunMaxProduct(masks []statemask.StateMask) ([]int, float64, error) {
	if err := d.validateMasks(masks); err != nil {
		return nil, 0, err
	}

	nv := len(d.variables)
	evidence := make([]maskVec, nv)
	for v, m := range masks {
		evidence[v] = toMaskVec(m)
	}

	msgV2F := make(map[int]map[int][]float64, nv)
	msgF2V := make(map[int]map[int][]float64, len(d.factors))
	for v := range d.variables {
		msgV2F[v] = make(map[int][]float64)
	}
	for f := range d.factors {
		msgF2V[f] = make(map[int][]float64)
	}
	backptrs := make(map[int]backpointer, len(d.factors))

	for i := len(d.order) - 1; i >= 0; i-- {
		id := d.order[i]
		p := d.parent[id]
		if p < 0 {
			continue
		}
		if isVariable(id, nv) {
			v := id
			pf := asFactorIndex(p, nv)
			msgV2F[v][pf] = d.maxVarMessage(v, pf, evidence[v], msgF2V)
		} else {
			f := asFactorIndex(id, nv)
			pv := p
			vec, bp := d.maxFactorMessage(f, pv, msgV2F)
			msgF2V[f][pv] = vec
			if bp != nil {
				backptrs[f] = *bp
			}
		}
	}

	// Root assignment: combine evidence with every incoming factor
	// message and take the argmax.
	rootSC := d.variables[d.root].stateCount
	rootProd := make([]float64, rootSC)
	copy(rootProd, evidence[d.root])
	for _, f := range d.variables[d.root].factors {
		in := msgF2V[f][d.root]
		for s := range rootProd {
			rootProd[s] *= in[s]
		}
	}
	rootState := argmax(rootProd)
	if rootProd[rootState] == 0 {
		return nil, 0, fmt.Errorf("dfg.RunMaxProduct: %w", ErrZeroEvidence)
	}

	states := make([]int, nv)
	states[d.root] = rootState

	// Top-down traceback: for each factor child of an already-assigned
	// variable, the recorded backpointer resolves the child variable's
	// state from the parent's chosen state.
	for _, id := range d.order {
		if !isVariable(id, nv) {
			continue
		}
		v := id
		vState := states[v]
		for _, c := range d.children[combinedVarID(v)] {
			f := asFactorIndex(c, nv)
			bp, ok := backptrs[f]
			if !ok {
				continue // unary factor child: no variable to resolve
			}
			states[bp.childVar] = bp.argmax[vState]
		}
	}

	logProb := d.assignmentLogProb(states)
	return states, logProb, nil
}

// maxVarMessage computes the max-product analogue of computeVarMessage:
// evidence at v times the elementwise product of incoming messages
// from every neighboring factor except excludeFactor.
func (d *DFG) maxVarMessage(v, excludeFactor int, evidence maskVec, msgF2V map[int]map[int][]float64) []float64 {
	sc := d.variables[v].stateCount
	vec := make([]float64, sc)
	copy(vec, evidence)

	for _, f := range d.variables[v].factors {
		if f == excludeFactor {
			continue
		}
		in, ok := msgF2V[f][v]
		if !ok {
			continue
		}
		for s := range vec {
			vec[s] *= in[s]
		}
	}
	rescaleMax(vec)
	return vec
}

// maxFactorMessage computes the max-product analogue of
// computeFactorMessage. For a pairwise factor it also returns a
// backpointer recording, per parent state, the argmax child state.
func (d *DFG) maxFactorMessage(f, excludeVar int, msgV2F map[int]map[int][]float64) ([]float64, *backpointer) {
	fn := d.factors[f]
	if len(fn.neighbors) == 1 {
		pot := fn.potential
		vec := make([]float64, pot.Cols())
		for s := 0; s < pot.Cols(); s++ {
			v, _ := pot.At(0, s)
			vec[s] = v
		}
		rescaleMax(vec)
		return vec, nil
	}

	u, v := fn.neighbors[0], fn.neighbors[1]
	pot := fn.potential
	if excludeVar == v {
		in := msgV2F[u][f]
		vec := make([]float64, pot.Cols())
		arg := make([]int, pot.Cols())
		for t := 0; t < pot.Cols(); t++ {
			best, bestS := -1.0, 0
			for s := 0; s < pot.Rows(); s++ {
				pv, _ := pot.At(s, t)
				cand := pv * in[s]
				if cand > best {
					best, bestS = cand, s
				}
			}
			vec[t] = best
			arg[t] = bestS
		}
		rescaleMax(vec)
		return vec, &backpointer{childVar: u, argmax: arg}
	}

	in := msgV2F[v][f]
	vec := make([]float64, pot.Rows())
	arg := make([]int, pot.Rows())
	for s := 0; s < pot.Rows(); s++ {
		best, bestT := -1.0, 0
		for t := 0; t < pot.Cols(); t++ {
			pv, _ := pot.At(s, t)
			cand := pv * in[t]
			if cand > best {
				best, bestT = cand, t
			}
		}
		vec[s] = best
		arg[s] = bestT
	}
	rescaleMax(vec)
	return vec, &backpointer{childVar: v, argmax: arg}
}

// assignmentLogProb computes the unnormalized log-probability of a
// full state assignment directly from the factor potentials (the
// evidence masks have already constrained every chosen state, so the
// evidence term contributes a factor of one).
func (d *DFG) assignmentLogProb(states []int) float64 {
	logProb := 0.0
	for _, fn := range d.factors {
		var v float64
		if len(fn.neighbors) == 1 {
			v, _ = fn.potential.At(0, states[fn.neighbors[0]])
		} else {
			v, _ = fn.potential.At(states[fn.neighbors[0]], states[fn.neighbors[1]])
		}
		if v <= 0 {
			return math.Inf(-1)
		}
		logProb += math.Log(v)
	}
	return logProb
}

// argmax returns the index of the largest element of vec.
func argmax(vec []float64) int {
	best := 0
	for i, v := range vec {
		if v > vec[best] {
			best = i
		}
	}
	return best
}
