// Package matrix provides the dense square storage used for QUBO matrices.
//
// The package provides:
//
//   - Dense: a row-major []float64 buffer with bounds-checked At/Set/AddAt that
//     return sentinel errors instead of panicking, and reject NaN/±Inf writes.
//   - Row(i): a no-copy row slice for O(n) dot products in energy-delta loops.
//   - Symmetrize / IsSymmetric: in-place (Q+Qᵀ)/2 repair with exact mirrored
//     entries, and a tolerance-aware symmetry check.
//   - Scale: a negated or rescaled copy for samplers with another sign convention.
//
// Matrices here are small (one row per decision variable) and dense; O(n²)
// memory is the expected trade-off for O(1) element access.
package matrix
