package dfginfo

import (
	"fmt"

	"github.com/katalvlaran/dfgraph/dfg"
	"github.com/katalvlaran/dfgraph/statemap"
	"github.com/katalvlaran/dfgraph/statemask"
)

// DfgInfo is a thin, exclusive owner of a DFG, a StateMaskMapSet
// aligned with its variables, and the ordered name/StateMap tables
// that let a caller address variables and factors by name instead of
// by the DFG's internal integer index.
type DfgInfo struct {
	graph     *dfg.DFG
	masks     *statemask.StateMaskMapSet
	varNames  []string
	factNames []string
	stateMaps []*statemap.StateMap

	varIndex  map[string]int
	factIndex map[string]int
}

// NewDfgInfo bundles graph with variable/factor name tables and a
// StateMaskMapSet. varNames and stateMaps must each have one entry per
// variable in graph, in the same order; factNames must have one entry
// per factor.
func NewDfgInfo(
	graph *dfg.DFG,
	masks *statemask.StateMaskMapSet,
	varNames []string,
	factNames []string,
	stateMaps []*statemap.StateMap,
) (*DfgInfo, error) {
	if len(varNames) != graph.NumVariables() || len(stateMaps) != graph.NumVariables() {
		return nil, fmt.Errorf("dfginfo.NewDfgInfo: %d variables, %d names, %d statemaps: %w",
			graph.NumVariables(), len(varNames), len(stateMaps), ErrLengthMismatch)
	}
	if len(factNames) != graph.NumFactors() {
		return nil, fmt.Errorf("dfginfo.NewDfgInfo: %d factors, %d names: %w",
			graph.NumFactors(), len(factNames), ErrLengthMismatch)
	}

	varIndex := make(map[string]int, len(varNames))
	for i, name := range varNames {
		varIndex[name] = i
	}
	factIndex := make(map[string]int, len(factNames))
	for i, name := range factNames {
		factIndex[name] = i
	}

	return &DfgInfo{
		graph:     graph,
		masks:     masks,
		varNames:  append([]string(nil), varNames...),
		factNames: append([]string(nil), factNames...),
		stateMaps: append([]*statemap.StateMap(nil), stateMaps...),
		varIndex:  varIndex,
		factIndex: factIndex,
	}, nil
}

// DFG returns the owned graph.
func (di *DfgInfo) DFG() *dfg.DFG { return di.graph }

// MaskSet returns the owned StateMaskMapSet.
func (di *DfgInfo) MaskSet() *statemask.StateMaskMapSet { return di.masks }

// VariableNames returns the variable names in index order.
func (di *DfgInfo) VariableNames() []string {
	out := make([]string, len(di.varNames))
	copy(out, di.varNames)
	return out
}

// FactorNames returns the factor names in index order.
func (di *DfgInfo) FactorNames() []string {
	out := make([]string, len(di.factNames))
	copy(out, di.factNames)
	return out
}

// VariableIndex resolves a variable name to its DFG index.
func (di *DfgInfo) VariableIndex(name string) (int, error) {
	i, ok := di.varIndex[name]
	if !ok {
		return 0, fmt.Errorf("dfginfo: variable %q: %w", name, ErrUnknownVariable)
	}
	return i, nil
}

// FactorIndex resolves a factor name to its DFG index.
func (di *DfgInfo) FactorIndex(name string) (int, error) {
	i, ok := di.factIndex[name]
	if !ok {
		return 0, fmt.Errorf("dfginfo: factor %q: %w", name, ErrUnknownFactor)
	}
	return i, nil
}

// StateMapOf returns the StateMap of the named variable.
func (di *DfgInfo) StateMapOf(name string) (*statemap.StateMap, error) {
	i, err := di.VariableIndex(name)
	if err != nil {
		return nil, err
	}
	return di.stateMaps[i], nil
}

// ObservationToMasks translates a name->symbol observation map into the
// ordered []statemask.StateMask the DFG's RunSumProduct/RunMaxProduct
// expect, using the owned StateMaskMapSet. Variables present in the set
// but absent from observed are treated as unobserved.
func (di *DfgInfo) ObservationToMasks(observed map[string]string) ([]statemask.StateMask, error) {
	byName, err := di.masks.SymbolsToMasks(observed)
	if err != nil {
		return nil, err
	}
	out := make([]statemask.StateMask, len(di.varNames))
	for i, name := range di.varNames {
		out[i] = byName[name]
	}
	return out, nil
}
