package qubo

import (
	"math"

	"github.com/katalvlaran/qroute/matrix"
)

// Energy returns xᵀQx + offset.
//
// x must have length q.Rows(); use (*Problem).Energy for a checked variant.
// Complexity: O(n·k) where k is the number of set bits.
func Energy(x Vector, q *matrix.Dense, offset float64) float64 {
	e := offset
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		row, _ := q.Row(i)
		for j, xj := range x {
			if xj != 0 {
				e += row[j]
			}
		}
	}

	return e
}

// FlipDelta returns E(x with bit i flipped) − E(x) without materializing the
// flipped vector. q must be symmetric.
//
//	δ = +1 if x_i = 0, −1 otherwise
//	Δ = 2·δ·(Q[i,:]·x) + Q[i,i]·δ²
//
// Complexity: O(n).
func FlipDelta(x Vector, q *matrix.Dense, i int) float64 {
	row, _ := q.Row(i)
	d := 1.0
	if x[i] != 0 {
		d = -1
	}
	var dot float64
	for j, xj := range x {
		if xj != 0 {
			dot += row[j]
		}
	}

	return 2*d*dot + row[i]*d*d
}

// CheckDelta compares FlipDelta against two full evaluations for bit i and
// returns a *NumericInconsistencyError when they differ by more than tol.
// x is left unchanged. Intended for tests and debug assertions.
func CheckDelta(x Vector, q *matrix.Dense, offset float64, i int, tol float64) error {
	delta := FlipDelta(x, q, i)
	before := Energy(x, q, offset)
	flipped := x.Clone()
	flipped.Flip(i)
	full := Energy(flipped, q, offset) - before
	if math.Abs(full-delta) > tol {
		return &NumericInconsistencyError{Bit: i, Delta: delta, Full: full}
	}

	return nil
}
