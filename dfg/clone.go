package dfg

// Clone returns a DFG with the same topology and factor potentials,
// safe to run sum-product/max-product on concurrently with the
// original: factor potentials are copied (not shared), so a clone used
// to accumulate expectation counts in one EM worker never races with
// ResetFactorPotentials or another clone's inference in a different
// worker. Message buffers and any prior RunSumProduct results are not
// copied; the clone starts as if freshly constructed.
func (d *DFG) Clone() *DFG {
	variables := make([]variableNode, len(d.variables))
	for i, v := range d.variables {
		variables[i] = variableNode{
			stateCount: v.stateCount,
			factors:    append([]int(nil), v.factors...),
		}
	}

	factors := make([]factorNode, len(d.factors))
	for i, f := range d.factors {
		factors[i] = factorNode{
			neighbors: append([]int(nil), f.neighbors...),
			potential: f.potential.Clone(),
		}
	}

	parent := append([]int(nil), d.parent...)
	order := append([]int(nil), d.order...)
	children := make([][]int, len(d.children))
	for i, c := range d.children {
		children[i] = append([]int(nil), c...)
	}

	return &DFG{
		variables: variables,
		factors:   factors,
		root:      d.root,
		parent:    parent,
		children:  children,
		order:     order,
	}
}
