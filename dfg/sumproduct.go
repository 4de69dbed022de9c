package dfg

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dfgraph/potential"
	"github.com/katalvlaran/dfgraph/statemask"
)

// underflowLogThreshold is the log-Z below which NormalizationConstant
// reports ErrUnderflow instead of returning exp(log Z). It sits a margin
// above log(math.SmallestNonzeroFloat64) ~ -744.44, where exp() would
// round to zero.
const underflowLogThreshold = -700.0

// toMaskVec converts a StateMask to 0/1 floats.
func toMaskVec(mask statemask.StateMask) maskVec {
	v := make(maskVec, len(mask))
	for i, b := range mask {
		if b {
			v[i] = 1
		}
	}
	return v
}

// validateMasks checks masks has one entry per variable with matching length.
func (d *DFG) validateMasks(masks []statemask.StateMask) error {
	if len(masks) != len(d.variables) {
		return fmt.Errorf("dfg: %d masks for %d variables: %w", len(masks), len(d.variables), ErrInvalidMasks)
	}
	for v, m := range masks {
		if len(m) != d.variables[v].stateCount {
			return fmt.Errorf("dfg: variable %d: mask length %d, want %d: %w", v, len(m), d.variables[v].stateCount, ErrInvalidMasks)
		}
	}
	return nil
}

// rescale divides vec by its sum if the sum is positive and finite,
// returning the log of that sum to fold into a message's cumulative
// log-scale. A zero sum is left unrescaled (the caller treats it as
// inconsistent evidence).
func rescale(vec []float64) float64 {
	sum := 0.0
	for _, x := range vec {
		sum += x
	}
	if sum <= 0 {
		return 0
	}
	for i := range vec {
		vec[i] /= sum
	}
	return math.Log(sum)
}

// RunSumProduct performs the two-pass sum-product schedule (inward
// leaves-to-root, then outward root-to-leaves) against masks as
// per-variable evidence. It is idempotent: calling it again with the
// same masks recomputes identical messages.
func (d *DFG) RunSumProduct(masks []statemask.StateMask) error {
	if err := d.validateMasks(masks); err != nil {
		return err
	}

	nv := len(d.variables)
	evidence := make([]maskVec, nv)
	for v, m := range masks {
		evidence[v] = toMaskVec(m)
	}

	msgV2F := make(map[int]map[int]message, nv)
	msgF2V := make(map[int]map[int]message, len(d.factors))
	for v := range d.variables {
		msgV2F[v] = make(map[int]message)
	}
	for f := range d.factors {
		msgF2V[f] = make(map[int]message)
	}

	// Inward pass: reverse BFS order, every node but the root sends to
	// its parent once every other neighbor (its children) has sent to it.
	for i := len(d.order) - 1; i >= 0; i-- {
		id := d.order[i]
		p := d.parent[id]
		if p < 0 {
			continue // root sends nothing inward
		}
		if isVariable(id, nv) {
			v := id
			pf := asFactorIndex(p, nv)
			msgV2F[v][pf] = d.computeVarMessage(v, pf, evidence[v], msgF2V)
		} else {
			f := asFactorIndex(id, nv)
			pv := p
			msgF2V[f][pv] = d.computeFactorMessage(f, pv, msgV2F)
		}
	}

	// Outward pass: forward BFS order, each node sends to every child a
	// message computed from all its OTHER neighbors (already available:
	// children's messages from the inward pass, and the parent's
	// message from this very pass at the previous level).
	for _, id := range d.order {
		for _, c := range d.children[id] {
			if isVariable(id, nv) {
				v := id
				cf := asFactorIndex(c, nv)
				msgV2F[v][cf] = d.computeVarMessage(v, cf, evidence[v], msgF2V)
			} else {
				f := asFactorIndex(id, nv)
				cv := c
				msgF2V[f][cv] = d.computeFactorMessage(f, cv, msgV2F)
			}
		}
	}

	d.evidence = evidence
	d.msgV2F = msgV2F
	d.msgF2V = msgF2V
	d.ranSumProduct = true
	return nil
}

// computeVarMessage computes mu_{v -> excludeFactor}: evidence at v
// times the product of incoming messages from every neighboring factor
// except excludeFactor, rescaled to unit sum.
func (d *DFG) computeVarMessage(v, excludeFactor int, evidence maskVec, msgF2V map[int]map[int]message) message {
	sc := d.variables[v].stateCount
	vec := make([]float64, sc)
	copy(vec, evidence)

	logScale := 0.0
	for _, f := range d.variables[v].factors {
		if f == excludeFactor {
			continue
		}
		in, ok := msgF2V[f][v]
		if !ok {
			continue // not yet available on this side of the schedule
		}
		for s := range vec {
			vec[s] *= in.vec[s]
		}
		logScale += in.logScale
	}

	logScale += rescale(vec)
	return message{vec: vec, logScale: logScale}
}

// computeFactorMessage computes mu_{f -> excludeVar}: for a unary
// factor, its potential row directly; for a pairwise factor, the
// matrix-vector product against the incoming message from the other
// (non-excluded) neighbor variable, rescaled to unit sum.
func (d *DFG) computeFactorMessage(f, excludeVar int, msgV2F map[int]map[int]message) message {
	fn := d.factors[f]
	if len(fn.neighbors) == 1 {
		pot := fn.potential
		vec := make([]float64, pot.Cols())
		for s := 0; s < pot.Cols(); s++ {
			v, _ := pot.At(0, s)
			vec[s] = v
		}
		logScale := rescale(vec)
		return message{vec: vec, logScale: logScale}
	}

	u, v := fn.neighbors[0], fn.neighbors[1]
	pot := fn.potential
	var out message
	if excludeVar == v {
		// mu_{f -> v}(t) = sum_s pot[s,t] * mu_{u -> f}(s)
		in := msgV2F[u][f]
		vec := make([]float64, pot.Cols())
		for t := 0; t < pot.Cols(); t++ {
			sum := 0.0
			for s := 0; s < pot.Rows(); s++ {
				pv, _ := pot.At(s, t)
				sum += pv * in.vec[s]
			}
			vec[t] = sum
		}
		logScale := in.logScale + rescale(vec)
		out = message{vec: vec, logScale: logScale}
	} else {
		// mu_{f -> u}(s) = sum_t pot[s,t] * mu_{v -> f}(t)
		in := msgV2F[v][f]
		vec := make([]float64, pot.Rows())
		for s := 0; s < pot.Rows(); s++ {
			sum := 0.0
			for t := 0; t < pot.Cols(); t++ {
				pv, _ := pot.At(s, t)
				sum += pv * in.vec[t]
			}
			vec[s] = sum
		}
		logScale := in.logScale + rescale(vec)
		out = message{vec: vec, logScale: logScale}
	}
	return out
}

// zAndUnnormalized returns the log-scale and the unnormalized (already
// rescaled) product-sum at variable v: log(Z) = logScale +
// log(localSum), Z = exp(logScale) * localSum.
func (d *DFG) zAndUnnormalized(v int) (logScale float64, localSum float64, allZero bool) {
	sc := d.variables[v].stateCount
	prod := make([]float64, sc)
	copy(prod, d.evidence[v])

	for _, f := range d.variables[v].factors {
		in := d.msgF2V[f][v]
		for s := range prod {
			prod[s] *= in.vec[s]
		}
		logScale += in.logScale
	}

	for _, x := range prod {
		localSum += x
	}
	return logScale, localSum, localSum == 0
}

// NormalizationConstant returns the partition function Z, computed at
// the root variable. Requires RunSumProduct to have been called.
// Returns ErrUnderflow if the reconstructed log(Z) is below
// underflowLogThreshold (close to where exp(log Z) underflows to zero),
// and ErrZeroEvidence if the
// evidence is inconsistent with every joint state.
func (d *DFG) NormalizationConstant() (float64, error) {
	if !d.ranSumProduct {
		return 0, ErrNotRun
	}
	logScale, localSum, allZero := d.zAndUnnormalized(d.root)
	if allZero {
		return 0, ErrZeroEvidence
	}
	logZ := logScale + math.Log(localSum)
	if logZ < underflowLogThreshold {
		return 0, ErrUnderflow
	}
	return math.Exp(logZ), nil
}

// VariableMarginals returns, for every variable in index order, its
// posterior marginal p(v=s) over basic states. Requires RunSumProduct.
func (d *DFG) VariableMarginals() ([][]float64, error) {
	if !d.ranSumProduct {
		return nil, ErrNotRun
	}

	out := make([][]float64, len(d.variables))
	for v := range d.variables {
		sc := d.variables[v].stateCount
		prod := make([]float64, sc)
		copy(prod, d.evidence[v])
		for _, f := range d.variables[v].factors {
			in := d.msgF2V[f][v]
			for s := range prod {
				prod[s] *= in.vec[s]
			}
		}
		sum := 0.0
		for _, x := range prod {
			sum += x
		}
		if sum == 0 {
			return nil, fmt.Errorf("dfg.VariableMarginals: variable %d: %w", v, ErrZeroEvidence)
		}
		for s := range prod {
			prod[s] /= sum
		}
		out[v] = prod
	}
	return out, nil
}

// FactorMarginals returns, for every factor in index order, the joint
// marginal over its neighbor states: the factor's potential combined
// with the messages entering its variables, renormalized so the
// factor's own entries sum to one. Requires RunSumProduct.
func (d *DFG) FactorMarginals() ([]*potential.Matrix, error) {
	if !d.ranSumProduct {
		return nil, ErrNotRun
	}

	out := make([]*potential.Matrix, len(d.factors))
	for f, fn := range d.factors {
		m := fn.potential.Clone()
		if len(fn.neighbors) == 1 {
			v := fn.neighbors[0]
			inward := d.incomingExcept(v, f)
			for s := 0; s < m.Cols(); s++ {
				pv, _ := m.At(0, s)
				_ = m.Set(0, s, pv*d.evidence[v][s]*inward[s])
			}
		} else {
			u, v := fn.neighbors[0], fn.neighbors[1]
			inU := d.incomingExcept(u, f)
			inV := d.incomingExcept(v, f)
			for s := 0; s < m.Rows(); s++ {
				for t := 0; t < m.Cols(); t++ {
					pv, _ := m.At(s, t)
					_ = m.Set(s, t, pv*d.evidence[u][s]*inU[s]*d.evidence[v][t]*inV[t])
				}
			}
		}
		total := m.Total()
		if total == 0 {
			return nil, fmt.Errorf("dfg.FactorMarginals: factor %d: %w", f, ErrZeroEvidence)
		}
		m.ScaleInPlace(1.0 / total)
		out[f] = m
	}
	return out, nil
}

// incomingExcept returns the elementwise product of every message
// arriving at variable v from a factor other than excludeFactor, one
// entry per basic state of v.
func (d *DFG) incomingExcept(v, excludeFactor int) []float64 {
	sc := d.variables[v].stateCount
	prod := make([]float64, sc)
	for i := range prod {
		prod[i] = 1
	}
	for _, f := range d.variables[v].factors {
		if f == excludeFactor {
			continue
		}
		in := d.msgF2V[f][v]
		for s := range prod {
			prod[s] *= in.vec[s]
		}
	}
	return prod
}

// AccumulateCounts runs sum-product against masks, then for every
// factor adds its factor marginal into the corresponding matrix in
// out (parallel to the factor index). out[f] must have the factor's
// potential shape.
func (d *DFG) AccumulateCounts(masks []statemask.StateMask, out []*potential.Matrix) error {
	if len(out) != len(d.factors) {
		return fmt.Errorf("dfg.AccumulateCounts: %d accumulators for %d factors: %w", len(out), len(d.factors), ErrMisshapen)
	}
	if err := d.RunSumProduct(masks); err != nil {
		return err
	}
	marginals, err := d.FactorMarginals()
	if err != nil {
		return err
	}
	for f, m := range marginals {
		if err := out[f].AddInPlace(m); err != nil {
			return fmt.Errorf("dfg.AccumulateCounts: factor %d: %w", f, err)
		}
	}
	return nil
}
