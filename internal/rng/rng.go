// Package rng - deterministic random streams shared by the stochastic solvers.
//
// Goals:
//   - Determinism: same seed ⇒ identical results across runs and worker counts.
//   - Encapsulation: no process-wide rand state, no time-based seeding anywhere.
//   - Independence: per-restart / per-attempt streams derived from a parent seed.
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. Every goroutine owns its own stream.
package rng

import "math/rand"

// DefaultSeed is used when callers pass seed==0 to FromSeed.
const DefaultSeed int64 = 1

// FromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
func FromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// Exact returns a *rand.Rand seeded with seed verbatim, zero included.
// Used where the seed schedule is part of the contract (annealing restarts).
func Exact(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64 finalizer, so neighbouring stream ids give uncorrelated seeds.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// Derive creates an independent stream for (parent, stream).
// Unlike a stream drawn from a shared *rand.Rand, the result does not depend on
// how many other streams were derived before it.
func Derive(parent int64, stream uint64) *rand.Rand {
	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}
