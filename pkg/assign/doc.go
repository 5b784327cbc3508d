// Package assign solves the rectangular minimum-cost assignment problem.
//
// The package is a pure numeric primitive: it knows nothing about slots,
// pins, blocking, or mirroring. Callers build a dense [Matrix] of integer
// costs (rows × columns), call [Solve], and receive one column per row.
//
// # Infeasible cells
//
// A cell may hold the [Infeasible] sentinel, meaning "this pairing is not
// acceptable". The solver treats the sentinel as a very large cost, not as
// a constraint: when no feasible pairing exists for a row, the row is still
// matched and the caller decides what to do with the undesirable result.
// Feasibility checking is deliberately a downstream concern.
//
// # Rectangular inputs
//
// For an r×c matrix with r ≤ c every row receives a distinct column. When
// r > c, exactly r−c rows stay unmatched and carry [Unassigned] in the
// result. The matrix is padded to a square internally; padding never leaks
// into the returned assignment.
//
// # Complexity
//
// [Solve] implements the Hungarian method with row/column potentials
// (the Jonker–Volgenant formulation) and runs in O(n³) for n = max(r, c).
// [BruteForce] enumerates all matchings and is only usable for tiny
// matrices; it exists to cross-check the solver.
package assign
