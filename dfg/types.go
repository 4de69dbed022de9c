package dfg

import (
	"fmt"

	"github.com/katalvlaran/dfgraph/potential"
)

// FactorSpec describes one factor node at DFG construction time:
// the ordered variable indices it neighbors (length 1 for a unary
// factor, 2 for a pairwise factor) and its potential. For a pairwise
// factor over (Neighbors[0], Neighbors[1]), Potential.At(s, t) gives
// the value when Neighbors[0]=s and Neighbors[1]=t.
type FactorSpec struct {
	Neighbors []int
	Potential *potential.Matrix
}

// variableNode is a DFG's internal record for one variable.
type variableNode struct {
	stateCount int
	factors    []int // indices of neighboring factors
}

// factorNode is a DFG's internal record for one factor.
type factorNode struct {
	neighbors []int // variable indices, length 1 or 2
	potential *potential.Matrix
}

// DFG is the bipartite discrete factor graph engine: variable nodes,
// factor nodes, their adjacency, and the topology (root and
// breadth-first order) chosen at construction.
//
// Internally, variable and factor nodes share one combined id space
// for topology bookkeeping: variable v has id v; factor f has id
// numVars+f. This lets a single BFS walk the bipartite tree without a
// separate node-kind dispatch in the topology code.
type DFG struct {
	variables []variableNode
	factors   []factorNode

	root     int   // variable index
	parent   []int // combined id -> parent combined id, -1 for root
	children [][]int
	order    []int // combined ids in BFS (root-first) order

	// evidence/results from the most recent RunSumProduct call.
	evidence     []maskVec
	ranSumProduct bool
	msgV2F       map[int]map[int]message // variable index -> factor index -> message
	msgF2V       map[int]map[int]message // factor index -> variable index -> message
}

// maskVec is an evidence mask converted to 0/1 floats, one entry per
// basic state of the owning variable.
type maskVec []float64

// message is a rescaled message vector together with the accumulated
// log of every rescale factor folded into producing it (including
// those of the messages it was built from), so a partition function
// reconstructed from it is numerically exact even across long chains.
type message struct {
	vec      []float64
	logScale float64
}

func combinedVarID(v int) int          { return v }
func combinedFactorID(numV, f int) int { return numV + f }
func isVariable(id, numV int) bool     { return id < numV }
func asFactorIndex(id, numV int) int   { return id - numV }

// NewDFG constructs a DFG from a per-variable state-count vector and
// an ordered list of factor specifications. Construction chooses
// variable 0 as the spanning-tree root, builds adjacency, and computes
// a breadth-first topological order. It fails with ErrMisshapen if any
// factor's potential shape does not match its neighbors' state counts,
// and with ErrGraphMalformed if the resulting graph is not connected
// and acyclic.
func NewDFG(stateCounts []int, factors []FactorSpec) (*DFG, error) {
	nv := len(stateCounts)
	if nv == 0 {
		return nil, fmt.Errorf("dfg.NewDFG: no variables: %w", ErrGraphMalformed)
	}
	for v, sc := range stateCounts {
		if sc <= 0 {
			return nil, fmt.Errorf("dfg.NewDFG: variable %d: non-positive state count %d: %w", v, sc, ErrMisshapen)
		}
	}

	variables := make([]variableNode, nv)
	for v, sc := range stateCounts {
		variables[v] = variableNode{stateCount: sc}
	}

	factorNodes := make([]factorNode, len(factors))
	for fi, spec := range factors {
		if len(spec.Neighbors) != 1 && len(spec.Neighbors) != 2 {
			return nil, fmt.Errorf("dfg.NewDFG: factor %d: %d neighbors (want 1 or 2): %w", fi, len(spec.Neighbors), ErrMisshapen)
		}
		for _, v := range spec.Neighbors {
			if v < 0 || v >= nv {
				return nil, fmt.Errorf("dfg.NewDFG: factor %d: neighbor variable %d out of range: %w", fi, v, ErrMisshapen)
			}
		}
		if spec.Potential == nil {
			return nil, fmt.Errorf("dfg.NewDFG: factor %d: nil potential: %w", fi, ErrMisshapen)
		}
		switch len(spec.Neighbors) {
		case 1:
			v := spec.Neighbors[0]
			if spec.Potential.Rows() != 1 || spec.Potential.Cols() != variables[v].stateCount {
				return nil, fmt.Errorf("dfg.NewDFG: factor %d: shape %dx%d does not match variable %d state count %d: %w",
					fi, spec.Potential.Rows(), spec.Potential.Cols(), v, variables[v].stateCount, ErrMisshapen)
			}
		case 2:
			u, v := spec.Neighbors[0], spec.Neighbors[1]
			if spec.Potential.Rows() != variables[u].stateCount || spec.Potential.Cols() != variables[v].stateCount {
				return nil, fmt.Errorf("dfg.NewDFG: factor %d: shape %dx%d does not match variables (%d,%d) state counts (%d,%d): %w",
					fi, spec.Potential.Rows(), spec.Potential.Cols(), u, v, variables[u].stateCount, variables[v].stateCount, ErrMisshapen)
			}
		}

		factorNodes[fi] = factorNode{neighbors: append([]int(nil), spec.Neighbors...), potential: spec.Potential}
		for _, v := range spec.Neighbors {
			variables[v].factors = append(variables[v].factors, fi)
		}
	}

	d := &DFG{
		variables: variables,
		factors:   factorNodes,
		root:      0,
	}
	if err := d.buildTopology(); err != nil {
		return nil, err
	}
	return d, nil
}

// buildTopology runs a breadth-first traversal of the combined
// variable/factor node graph from d.root, recording each node's parent
// and visitation order, then groups children by parent. Returns
// ErrGraphMalformed if the graph is disconnected or contains a cycle
// (detected as: some node is reached a second time, or not every node
// is reached).
func (d *DFG) buildTopology() error {
	nv := len(d.variables)
	nf := len(d.factors)
	total := nv + nf

	adj := make([][]int, total)
	for v := range d.variables {
		for _, f := range d.variables[v].factors {
			adj[combinedVarID(v)] = append(adj[combinedVarID(v)], combinedFactorID(nv, f))
		}
	}
	for f := range d.factors {
		for _, v := range d.factors[f].neighbors {
			adj[combinedFactorID(nv, f)] = append(adj[combinedFactorID(nv, f)], combinedVarID(v))
		}
	}

	parent := make([]int, total)
	visited := make([]bool, total)
	for i := range parent {
		parent[i] = -1
	}

	order := make([]int, 0, total)
	queue := []int{combinedVarID(d.root)}
	visited[d.root] = true

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, nb := range adj[n] {
			if visited[nb] {
				if nb != parent[n] {
					return fmt.Errorf("dfg.NewDFG: cycle detected at node %d: %w", nb, ErrGraphMalformed)
				}
				continue
			}
			visited[nb] = true
			parent[nb] = n
			queue = append(queue, nb)
		}
	}

	if len(order) != total {
		return fmt.Errorf("dfg.NewDFG: graph is disconnected (%d of %d nodes reachable from root): %w", len(order), total, ErrGraphMalformed)
	}

	children := make([][]int, total)
	for _, n := range order {
		if p := parent[n]; p >= 0 {
			children[p] = append(children[p], n)
		}
	}

	d.parent = parent
	d.children = children
	d.order = order
	return nil
}

// ConsistencyCheck asserts that every factor's potential shape matches
// its neighbors' state counts, every variable appears in at least one
// factor, and the graph forms a single connected tree spanning every
// variable and factor node from variable 0.
func (d *DFG) ConsistencyCheck() error {
	for v := range d.variables {
		if len(d.variables[v].factors) == 0 {
			return fmt.Errorf("dfg.ConsistencyCheck: variable %d has no neighboring factors: %w", v, ErrGraphMalformed)
		}
	}
	for f, fn := range d.factors {
		switch len(fn.neighbors) {
		case 1:
			v := fn.neighbors[0]
			if fn.potential.Rows() != 1 || fn.potential.Cols() != d.variables[v].stateCount {
				return fmt.Errorf("dfg.ConsistencyCheck: factor %d: shape %dx%d does not match variable %d state count %d: %w",
					f, fn.potential.Rows(), fn.potential.Cols(), v, d.variables[v].stateCount, ErrMisshapen)
			}
		case 2:
			u, v := fn.neighbors[0], fn.neighbors[1]
			if fn.potential.Rows() != d.variables[u].stateCount || fn.potential.Cols() != d.variables[v].stateCount {
				return fmt.Errorf("dfg.ConsistencyCheck: factor %d: shape %dx%d does not match variables (%d,%d) state counts (%d,%d): %w",
					f, fn.potential.Rows(), fn.potential.Cols(), u, v, d.variables[u].stateCount, d.variables[v].stateCount, ErrMisshapen)
			}
		}
	}
	return d.buildTopology()
}

// NumVariables returns the number of variable nodes.
func (d *DFG) NumVariables() int { return len(d.variables) }

// NumFactors returns the number of factor nodes.
func (d *DFG) NumFactors() int { return len(d.factors) }

// StateCount returns the state count of variable v.
func (d *DFG) StateCount(v int) int { return d.variables[v].stateCount }

// ResetFactorPotentials swaps in new potential contents for the
// factors named by idx (parallel to newMats), without rebuilding the
// graph. It validates every replacement's shape against its factor's
// existing neighbors before mutating any factor (ErrMisshapen, no
// partial mutation).
func (d *DFG) ResetFactorPotentials(newMats []*potential.Matrix, idx []int) error {
	if len(newMats) != len(idx) {
		return fmt.Errorf("dfg.ResetFactorPotentials: %d matrices for %d indices: %w", len(newMats), len(idx), ErrMisshapen)
	}
	for i, fi := range idx {
		if fi < 0 || fi >= len(d.factors) {
			return fmt.Errorf("dfg.ResetFactorPotentials: factor index %d out of range: %w", fi, ErrMisshapen)
		}
		if !newMats[i].SameShape(d.factors[fi].potential) {
			return fmt.Errorf("dfg.ResetFactorPotentials: factor %d: %w", fi, ErrMisshapen)
		}
	}
	for i, fi := range idx {
		d.factors[fi].potential = newMats[i]
	}
	return nil
}
