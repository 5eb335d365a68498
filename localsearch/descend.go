// Package localsearch - single-bit-flip descent to a 1-opt local optimum.
//
// Descend repeatedly evaluates every single-bit flip and applies one improving
// move until none remains.
//   - Steepest mode (rng == nil): the most negative delta wins; ties go to the
//     lowest bit index.
//   - Randomized mode (rng != nil): one improving move is drawn uniformly.
//
// MultiDescend runs one steepest descent followed by Attempts−1 randomized
// descents from the same start, each on its own derived stream, and keeps the
// lowest energy.
//
// Contracts:
//   - q is square and symmetric, len(x) == q.Rows(); callers validate upstream.
//   - An improving move has delta < −qubo.Tolerance.
//   - Input vectors are never mutated.
//
// Complexity:
//   - One round: O(n²) (n deltas at O(n) each).
//   - Every applied move lowers energy by more than the tolerance, so descent
//     terminates; rounds are bounded by the energy range divided by that step.
package localsearch

import (
	"math/rand"

	"github.com/katalvlaran/qroute/matrix"
	"github.com/katalvlaran/qroute/qubo"
)

// Descend runs single-bit-flip descent from x and returns the local optimum
// with its energy. The returned energy never exceeds qubo.Energy(x, q, offset).
func Descend(x qubo.Vector, q *matrix.Dense, offset float64, rng *rand.Rand) (qubo.Vector, float64) {
	cur := x.Clone()
	e := qubo.Energy(cur, q, offset)

	n := len(cur)
	improving := make([]int, 0, n)
	deltas := make([]float64, n)
	var (
		i, pick int
		d       float64
	)
	for {
		improving = improving[:0]
		for i = 0; i < n; i++ {
			d = qubo.FlipDelta(cur, q, i)
			if d < -qubo.Tolerance {
				improving = append(improving, i)
				deltas[i] = d
			}
		}
		if len(improving) == 0 {
			break
		}

		if rng == nil {
			pick = improving[0]
			for _, i = range improving[1:] {
				if deltas[i] < deltas[pick] {
					pick = i
				}
			}
		} else {
			pick = improving[rng.Intn(len(improving))]
		}
		cur.Flip(pick)
		e += deltas[pick]
	}

	return cur, e
}
