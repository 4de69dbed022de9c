// Package dfginfo bundles a dfg.DFG together with the StateMaskMapSet
// and name/index tables needed to translate between external
// variable/factor names and symbols and the DFG's internal integer
// indices. It carries no inference logic of its own.
package dfginfo
