package pipeline

import (
	"context"

	"github.com/katalvlaran/qroute/internal/rng"
	"github.com/katalvlaran/qroute/matrix"
	"github.com/katalvlaran/qroute/qubo"
)

// Sampler produces raw candidate assignments for the QUBO xᵀQx + offset.
//
// It is the contract for external samplers such as variational quantum
// circuits. Implementations that maximize, or that minimize the negated form,
// should consume (*qubo.Problem).Negated. Every returned vector must have
// length q.Rows().
type Sampler interface {
	Sample(ctx context.Context, q *matrix.Dense, offset float64) ([]qubo.Vector, error)
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(ctx context.Context, q *matrix.Dense, offset float64) ([]qubo.Vector, error)

// Sample implements Sampler.
func (f SamplerFunc) Sample(ctx context.Context, q *matrix.Dense, offset float64) ([]qubo.Vector, error) {
	return f(ctx, q, offset)
}

// RandomSampler draws Shots uniform assignments. It is the baseline sampler:
// any structured sampler should beat random starts followed by refinement.
type RandomSampler struct {
	Shots int
	Seed  int64
}

// Sample implements Sampler.
func (s RandomSampler) Sample(ctx context.Context, q *matrix.Dense, _ float64) ([]qubo.Vector, error) {
	r := rng.FromSeed(s.Seed)
	out := make([]qubo.Vector, 0, s.Shots)
	for i := 0; i < s.Shots; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, qubo.RandomVector(q.Rows(), r))
	}

	return out, nil
}

// DecodeStates turns n-bit integer measurement outcomes into vectors, most
// significant bit first (qubit 0 is the highest bit).
func DecodeStates(states []uint64, n int) []qubo.Vector {
	out := make([]qubo.Vector, len(states))
	for i, s := range states {
		out[i] = qubo.FromState(s, n)
	}

	return out
}
