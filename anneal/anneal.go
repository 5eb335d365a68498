// Package anneal - multi-restart simulated annealing over QUBO energies.
//
// Each restart:
//   - seeds its own stream with Seed + r·137,
//   - draws a uniform random start and computes its full energy,
//   - performs Steps Metropolis updates: pick a uniform bit, compute its flip
//     delta, accept if delta < 0 or with probability exp(−delta/temp),
//   - cools geometrically from TempMax toward TempMin.
//
// The best state over every restart and every update is returned, not the
// final state of each run.
//
// Concurrency:
//   - Restarts run on an errgroup limited to Workers goroutines.
//   - Q is shared read-only; every restart owns its state and stream.
//   - Reduction walks restarts in index order with a strict comparison, so the
//     result is identical for any worker count and ties go to the lowest restart.
//
// Complexity:
//   - O(n) per update, O(Restarts · Steps · n) total.
package anneal

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/qroute/internal/rng"
	"github.com/katalvlaran/qroute/matrix"
	"github.com/katalvlaran/qroute/qubo"
)

// restartStride separates the seeds of consecutive restarts.
const restartStride = 137

// Result is the outcome of Anneal.
type Result struct {
	// Solution is the lowest-energy state seen.
	Solution qubo.Vector

	// Energy is the full energy of Solution, recomputed from scratch.
	Energy float64

	// Restart is the index of the restart that produced Solution.
	Restart int

	// RestartEnergies holds each restart's best running energy.
	RestartEnergies []float64

	// Accepted counts accepted flips over all restarts.
	Accepted int64
}

type run struct {
	best     qubo.Vector
	bestE    float64
	accepted int64
}

// Anneal minimizes xᵀQx + offset. q must be symmetric.
func Anneal(q *matrix.Dense, offset float64, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if q == nil || !q.IsSquare() {
		return Result{}, ErrInvalidMatrix
	}

	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	runs := make([]run, opts.Restarts)
	var g errgroup.Group
	g.SetLimit(workers)
	for r := 0; r < opts.Restarts; r++ {
		g.Go(func() error {
			runs[r] = restart(q, offset, opts, r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("anneal: %w", err)
	}

	res := Result{RestartEnergies: make([]float64, opts.Restarts), Restart: -1}
	bestE := math.Inf(1)
	for r := range runs {
		res.RestartEnergies[r] = runs[r].bestE
		res.Accepted += runs[r].accepted
		if runs[r].bestE < bestE {
			bestE = runs[r].bestE
			res.Restart = r
		}
	}
	res.Solution = runs[res.Restart].best
	res.Energy = qubo.Energy(res.Solution, q, offset)

	return res, nil
}

// restart performs one annealing run.
func restart(q *matrix.Dense, offset float64, opts Options, r int) run {
	stream := rng.Exact(opts.Seed + int64(r)*restartStride)
	n := q.Rows()

	x := qubo.RandomVector(n, stream)
	e := qubo.Energy(x, q, offset)
	out := run{best: x.Clone(), bestE: e}

	factor := math.Pow(opts.TempMin/opts.TempMax, 1/float64(opts.Steps))
	temp := opts.TempMax
	var (
		step, i int
		delta   float64
	)
	for step = 0; step < opts.Steps; step++ {
		i = stream.Intn(n)
		delta = qubo.FlipDelta(x, q, i)
		// Float64 is drawn only for non-improving moves.
		if delta < 0 || stream.Float64() < math.Exp(-delta/temp) {
			x.Flip(i)
			e += delta
			out.accepted++
			if e < out.bestE {
				out.bestE = e
				copy(out.best, x)
			}
		}
		temp *= factor
	}

	return out
}
