// Package statemap provides a bidirectional mapping between human-readable
// symbols (fixed-length strings, e.g. "A", "C", "G", "T") and the internal
// integer states used throughout dfgraph.
//
// A StateMap distinguishes basic states, in [0, StateCount), from
// meta-states, in [StateCount, MetaStateCount), which denote non-empty
// sets of basic states ("degeneracy" — e.g. a nucleotide ambiguity code
// standing for several possible bases, or a symbol meaning "missing").
// Every basic state's degeneracy vector is itself; a meta-symbol's
// degeneracy vector is a subset of the basic symbols of the same
// StateMap — meta-symbols are never defined in terms of other
// meta-symbols.
//
// A multi-state StateMap is the n-fold Cartesian power of a base
// StateMap, used to model tuples of positions (e.g. a genotype as a
// pair of alleles) as a single composite alphabet.
//
// StateMaps are immutable after construction and are safe to share by
// reference across every variable node that uses the same alphabet.
package statemap
