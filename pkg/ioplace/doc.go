// Package ioplace assigns I/O pins to boundary slots at minimum estimated
// wirelength.
//
// The package is the middle stage of the placement pipeline: an external
// step generates candidate slots and partitions them into sections, this
// package poses each section as a weighted bipartite assignment problem,
// solves it with pkg/assign, and reconciles the numeric result back onto
// physical slots.
//
// # Per-section flow
//
// Each section runs two independent passes through a [Matcher]:
//
//  1. Ungrouped: one matrix row per unblocked slot, one column per
//     ungrouped pin. The solved assignment is committed in two phases:
//     mirrored pins first (each placement also commits its reflected
//     partner), then the remaining pins.
//  2. Grouped: one row per contiguous candidate block, one column per pin
//     group. Committed blocks are marked used and permanently blocked so
//     no later pass reconsiders them.
//
// # Failure semantics
//
// A pin force-matched to an infeasible slot is still placed (the solver
// guarantees a slot exists even if undesirable) and a warning diagnostic
// is recorded. A mirrored pin whose reflected position has no exact slot
// is an error diagnostic: the pair is rolled back without committing
// either pin, other placements are unaffected, and the fault points at
// upstream slot generation rather than solver infeasibility.
//
// [Placer] drives the per-section flow over a whole boundary, optionally
// spreading mirror-free workloads across workers.
package ioplace
