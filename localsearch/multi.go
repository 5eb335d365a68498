package localsearch

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/qroute/internal/rng"
	"github.com/katalvlaran/qroute/matrix"
	"github.com/katalvlaran/qroute/qubo"
)

// Sentinel errors for option validation.
var (
	// ErrInvalidAttempts indicates Attempts < 1.
	ErrInvalidAttempts = errors.New("localsearch: attempts must be at least 1")

	// ErrInvalidEps indicates a negative or non-finite acceptance epsilon.
	ErrInvalidEps = errors.New("localsearch: eps must be finite and non-negative")
)

// Options configures MultiDescend.
type Options struct {
	// Attempts is the total number of descents: one steepest plus Attempts−1 randomized.
	Attempts int

	// Seed drives the randomized attempts. Attempt a (1-based) uses the stream
	// derived from (Seed, a), independent of every other attempt.
	Seed int64

	// Eps is the margin by which a later attempt must beat the best so far.
	Eps float64
}

// DefaultOptions returns 20 attempts, seed 0 and Eps = qubo.Tolerance.
func DefaultOptions() Options {
	return Options{Attempts: 20, Seed: 0, Eps: qubo.Tolerance}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.Attempts < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidAttempts, o.Attempts)
	}
	if o.Eps < 0 || math.IsNaN(o.Eps) || math.IsInf(o.Eps, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidEps, o.Eps)
	}

	return nil
}

// MultiDescend runs one steepest descent from x, then opts.Attempts−1
// randomized descents from the same x, and returns the best local optimum.
// A randomized result replaces the incumbent only when its energy is lower by
// more than opts.Eps, so the steepest result wins ties.
//
// Complexity: O(Attempts · rounds · n²).
func MultiDescend(x qubo.Vector, q *matrix.Dense, offset float64, opts Options) (qubo.Vector, float64, error) {
	if err := opts.Validate(); err != nil {
		return nil, 0, err
	}

	best, bestE := Descend(x, q, offset, nil)
	var (
		a  int
		xr qubo.Vector
		er float64
	)
	for a = 1; a < opts.Attempts; a++ {
		xr, er = Descend(x, q, offset, rng.Derive(opts.Seed, uint64(a)))
		if er < bestE-opts.Eps {
			best, bestE = xr, er
		}
	}

	return best, bestE, nil
}
