// Package qubo encodes cheapest-simple-path routing as a Quadratic Unconstrained
// Binary Optimization problem and evaluates its energy.
//
// Model:
//
//   - Every undirected input edge k yields two binary variables: 2k for the
//     forward arc and 2k+1 for the backward arc, both carrying the edge cost.
//   - E(x) = xᵀQx + Offset, with Q exactly symmetric.
//   - The objective is the sum of selected arc costs plus one degree-balance
//     penalty P·(out − in − target)² per node (target +1 at the source, −1 at
//     the destination, 0 elsewhere).
//
// Constraints are composable: anything implementing Constraint can expand its
// quadratic penalty into a Builder. LinearEquality is the generic
// W·(Σcᵢxᵢ − t)² expansion; DegreeBalance and ArcCosts are built on it.
//
// Energy evaluation:
//
//   - Energy computes the full quadratic form.
//   - FlipDelta computes a single-bit change in O(n) and is the form used by the
//     solvers' inner loops.
//   - CheckDelta cross-checks the two for tests and debug assertions.
//
// The encoder guarantees only that the global optimum decodes to a cheapest
// simple path when P exceeds the cost of that path. Degree balance alone does
// not exclude cycles or round trips; those are removed downstream.
package qubo
