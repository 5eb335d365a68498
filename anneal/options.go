package anneal

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidOptions is wrapped by every Validate failure.
var ErrInvalidOptions = errors.New("anneal: invalid options")

// ErrInvalidMatrix indicates a nil or non-square QUBO matrix.
var ErrInvalidMatrix = errors.New("anneal: matrix must be non-nil and square")

// Options configures Anneal.
type Options struct {
	// Steps is the number of Metropolis updates per restart.
	Steps int

	// Restarts is the number of independent runs. Restart r draws from the
	// stream seeded with Seed + r·137.
	Restarts int

	// TempMax and TempMin bound the geometric cooling schedule:
	// temp is multiplied by (TempMin/TempMax)^(1/Steps) after every update.
	TempMax float64
	TempMin float64

	Seed int64

	// Workers caps concurrently running restarts. 0 means GOMAXPROCS.
	// The result does not depend on this value.
	Workers int
}

// DefaultOptions returns 50 000 steps, 20 restarts, temperatures 100 → 0.001,
// seed 42 and a single worker.
func DefaultOptions() Options {
	return Options{
		Steps:    50000,
		Restarts: 20,
		TempMax:  100,
		TempMin:  0.001,
		Seed:     42,
		Workers:  1,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	switch {
	case o.Steps < 1:
		return fmt.Errorf("%w: steps %d < 1", ErrInvalidOptions, o.Steps)
	case o.Restarts < 1:
		return fmt.Errorf("%w: restarts %d < 1", ErrInvalidOptions, o.Restarts)
	case !positiveFinite(o.TempMax):
		return fmt.Errorf("%w: temp_max %v must be finite and positive", ErrInvalidOptions, o.TempMax)
	case !positiveFinite(o.TempMin):
		return fmt.Errorf("%w: temp_min %v must be finite and positive", ErrInvalidOptions, o.TempMin)
	case o.TempMin > o.TempMax:
		return fmt.Errorf("%w: temp_min %v > temp_max %v", ErrInvalidOptions, o.TempMin, o.TempMax)
	case o.Workers < 0:
		return fmt.Errorf("%w: workers %d < 0", ErrInvalidOptions, o.Workers)
	}

	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
