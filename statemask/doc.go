// Package statemask translates observed symbols into boolean masks
// over a StateMap's basic states, for use as sum-product/max-product
// evidence.
//
// A StateMask is a []bool of length StateCount() where true marks a
// basic state consistent with an observation. An all-true mask (every
// state consistent) represents "unobserved" — a uniform prior over
// states rather than a restriction. A StateMaskMap precomputes one
// mask per meta-state of a single StateMap, so repeated lookups of the
// same observed symbol cost nothing beyond a slice index. A
// StateMaskMapSet bundles one StateMaskMap per variable in a DFG and
// translates a full symbol observation (one symbol per variable, or a
// variable name absent meaning "unobserved") into per-variable masks.
package statemask
