// SPDX-License-Identifier: MIT

// Package matrix - symmetry repair and scaling on *Dense.
//
// Everything here works on the flat buffer directly, in fixed i→j order,
// so results are bit-for-bit reproducible across runs.
package matrix

import (
	"fmt"
	"math"
)

const (
	opSymmetrize = "Symmetrize"
	opScale      = "Scale"
)

// matrixErrorf wraps an error with an operation tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Symmetrize replaces m with (m + mᵀ)/2 in place.
//
// Each mirrored pair is averaged once and written to both cells, so the result
// satisfies m[i,j] == m[j,i] exactly, not just within a tolerance.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity: Time O(n²), Space O(1).
func (m *Dense) Symmetrize() error {
	if m == nil {
		return matrixErrorf(opSymmetrize, ErrNilMatrix)
	}
	if m.r != m.c {
		return matrixErrorf(opSymmetrize, ErrNonSquare)
	}

	n := m.r
	var i, j int
	var avg float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			avg = (m.data[i*n+j] + m.data[j*n+i]) / 2
			m.data[i*n+j] = avg
			m.data[j*n+i] = avg
		}
	}

	return nil
}

// IsSymmetric reports whether |m[i,j] − m[j,i]| ≤ eps for all i<j.
// eps == 0 demands exact equality. Non-square or nil matrices are never symmetric.
//
// Complexity: O(n²).
func (m *Dense) IsSymmetric(eps float64) bool {
	if m == nil || m.r != m.c {
		return false
	}
	n := m.r
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(m.data[i*n+j]-m.data[j*n+i]) > eps {
				return false
			}
		}
	}

	return true
}

// Scale returns alpha·m as a new Dense.
//
// Errors:
//   - ErrNilMatrix; ErrNaNInf if alpha or any product is not finite.
//
// Complexity: O(r*c).
func (m *Dense) Scale(alpha float64) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opScale, ErrNilMatrix)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	out := m.clone()
	for k := range out.data {
		out.data[k] *= alpha
		if math.IsInf(out.data[k], 0) {
			return nil, matrixErrorf(opScale, ErrNaNInf)
		}
	}

	return out, nil
}
