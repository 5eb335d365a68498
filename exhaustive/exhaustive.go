// Package exhaustive enumerates every binary assignment of a small QUBO and
// returns all global minima. It is the reference solver used to cross-check
// the heuristics.
package exhaustive

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"slices"

	"github.com/katalvlaran/qroute/matrix"
	"github.com/katalvlaran/qroute/qubo"
)

// DefaultMaxVars bounds the search to 2²² assignments unless overridden.
const DefaultMaxVars = 22

// maxVarsCap is the widest state a uint64 counter can enumerate.
const maxVarsCap = 62

// resyncEvery bounds floating-point drift of the running energy.
const resyncEvery = 1 << 12

var (
	// ErrTooManyVariables indicates n exceeds the configured limit.
	ErrTooManyVariables = errors.New("exhaustive: too many variables")

	// ErrInvalidMatrix indicates a nil or non-square matrix.
	ErrInvalidMatrix = errors.New("exhaustive: matrix must be non-nil and square")
)

// Options configures Solve.
type Options struct {
	// MaxVars is the largest variable count accepted; 0 means DefaultMaxVars.
	MaxVars int
}

// Result lists every assignment within qubo.Tolerance of the minimum.
type Result struct {
	Energy float64

	// Solutions are ordered as a lexicographic 0/1 enumeration with variable 0
	// most significant.
	Solutions []qubo.Vector

	// Evaluated is the number of assignments visited (2ⁿ).
	Evaluated uint64
}

// Solve enumerates all 2ⁿ assignments of xᵀQx + offset. q must be symmetric.
//
// States are visited in Gray-code order so each step is a single FlipDelta;
// any state that may tie the incumbent is re-evaluated in full before it is
// compared.
//
// Complexity: O(2ⁿ · n) time, O(n + |Solutions|·n) space.
func Solve(q *matrix.Dense, offset float64, opts Options) (Result, error) {
	if q == nil || !q.IsSquare() {
		return Result{}, ErrInvalidMatrix
	}
	limit := opts.MaxVars
	if limit <= 0 {
		limit = DefaultMaxVars
	}
	if limit > maxVarsCap {
		limit = maxVarsCap
	}
	n := q.Rows()
	if n > limit {
		return Result{}, fmt.Errorf("%w: %d variables, limit %d", ErrTooManyVariables, n, limit)
	}

	x := make(qubo.Vector, n)
	e := qubo.Energy(x, q, offset)
	best := e
	states := []uint64{0}

	total := uint64(1) << uint(n)
	var (
		k, state uint64
		p, i     int
	)
	for k = 1; k < total; k++ {
		p = bits.TrailingZeros64(k)
		i = n - 1 - p
		e += qubo.FlipDelta(x, q, i)
		x.Flip(i)
		state ^= 1 << uint(p)

		if k%resyncEvery == 0 {
			e = qubo.Energy(x, q, offset)
		}
		if e > best+screen(best) {
			continue
		}

		e = qubo.Energy(x, q, offset)
		switch {
		case e < best-qubo.Tolerance:
			best = e
			states = append(states[:0], state)
		case e <= best+qubo.Tolerance:
			states = append(states, state)
		}
	}

	slices.Sort(states)
	res := Result{Energy: best, Solutions: make([]qubo.Vector, len(states)), Evaluated: total}
	for j, s := range states {
		res.Solutions[j] = qubo.FromState(s, n)
	}

	return res, nil
}

// screen is the slack under which a running energy is re-checked exactly.
func screen(best float64) float64 {
	return 1e-6 * math.Max(1, math.Abs(best))
}
