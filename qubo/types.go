package qubo

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qroute/matrix"
)

// Tolerance is the decision threshold used throughout: an energy change counts as
// an improvement only if it is below −Tolerance, and two energies closer than
// Tolerance are considered equal.
const Tolerance = 1e-9

// Sentinel errors.
var (
	// ErrInvalidInput is matched by every *InputError returned from Encode.
	ErrInvalidInput = errors.New("qubo: invalid input")

	// ErrNumericInconsistency is matched by *NumericInconsistencyError from CheckDelta.
	ErrNumericInconsistency = errors.New("qubo: incremental energy diverged from full recomputation")

	// ErrVectorLength indicates a solution vector whose length differs from the variable count.
	ErrVectorLength = errors.New("qubo: solution vector length mismatch")

	// ErrNonBinary indicates a solution vector holding an entry other than 0 or 1.
	ErrNonBinary = errors.New("qubo: solution vector entry is not 0 or 1")
)

// InputError describes a malformed encoder input. It aborts the pipeline before
// any solver runs.
type InputError struct {
	Field  string // "graph", "source", "dest", "edge", "penalty", "constraint"
	Value  string // offending value, formatted
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("qubo: invalid input: %s %s: %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) true for every *InputError.
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// NumericInconsistencyError reports a flip delta that disagrees with the
// difference of two full energy evaluations. It signals a bookkeeping bug and is
// produced only by CheckDelta, never on solver hot paths.
type NumericInconsistencyError struct {
	Bit   int
	Delta float64 // FlipDelta result
	Full  float64 // Energy(after) − Energy(before)
}

func (e *NumericInconsistencyError) Error() string {
	return fmt.Sprintf("qubo: bit %d: flip delta %g, full recomputation %g", e.Bit, e.Delta, e.Full)
}

// Is makes errors.Is(err, ErrNumericInconsistency) true.
func (e *NumericInconsistencyError) Is(target error) bool { return target == ErrNumericInconsistency }

// Arc is one directed traversal option between two nodes.
type Arc struct {
	From string
	To   string
}

// Reverse returns the arc in the opposite direction.
func (a Arc) Reverse() Arc { return Arc{From: a.To, To: a.From} }

func (a Arc) String() string { return a.From + "->" + a.To }

// Problem is an encoded routing instance: E(x) = xᵀQx + Offset.
//
// Q is exactly symmetric and read-only after Encode returns; it may be shared by
// concurrent solvers without locking.
type Problem struct {
	Q       *matrix.Dense
	Offset  float64
	Vars    *VarIndex
	Source  string
	Dest    string
	Penalty float64
}

// N returns the number of binary decision variables.
func (p *Problem) N() int { return p.Vars.Len() }

// Energy validates x and returns xᵀQx + Offset.
func (p *Problem) Energy(x Vector) (float64, error) {
	if len(x) != p.N() {
		return 0, fmt.Errorf("got %d bits, want %d: %w", len(x), p.N(), ErrVectorLength)
	}

	return Energy(x, p.Q, p.Offset), nil
}

// Negated returns (−Q, −Offset), the form expected by samplers that maximize
// xᵀMx + c or that minimize with the opposite sign convention.
func (p *Problem) Negated() (*matrix.Dense, float64, error) {
	neg, err := p.Q.Scale(-1)
	if err != nil {
		return nil, 0, err
	}

	return neg, -p.Offset, nil
}
