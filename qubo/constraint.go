package qubo

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qroute/matrix"
)

// Builder accumulates linear, quadratic and constant terms into a square QUBO
// matrix. Off-diagonal contributions are split evenly across (i,j) and (j,i), so
// the matrix stays symmetric as long as every write goes through the Builder.
type Builder struct {
	q      *matrix.Dense
	offset float64
}

// NewBuilder returns a Builder over n variables.
func NewBuilder(n int) (*Builder, error) {
	q, err := matrix.NewSquare(n)
	if err != nil {
		return nil, fmt.Errorf("qubo: builder: %w", err)
	}

	return &Builder{q: q}, nil
}

// N returns the number of variables.
func (b *Builder) N() int { return b.q.Rows() }

// AddLinear adds v·x_i (stored on the diagonal, since x_i² = x_i).
func (b *Builder) AddLinear(i int, v float64) error {
	return b.q.AddAt(i, i, v)
}

// AddQuadratic adds v·x_i·x_j. For i == j it degenerates to AddLinear.
func (b *Builder) AddQuadratic(i, j int, v float64) error {
	if i == j {
		return b.AddLinear(i, v)
	}
	half := v / 2
	if err := b.q.AddAt(i, j, half); err != nil {
		return err
	}

	return b.q.AddAt(j, i, half)
}

// AddConstant adds v to the energy offset.
func (b *Builder) AddConstant(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("qubo: constant %v: %w", v, matrix.ErrNaNInf)
	}
	b.offset += v

	return nil
}

// Build symmetrizes the accumulated matrix and returns it with the offset.
// The Builder must not be used afterwards.
func (b *Builder) Build() (*matrix.Dense, float64, error) {
	if err := b.q.Symmetrize(); err != nil {
		return nil, 0, fmt.Errorf("qubo: build: %w", err)
	}

	return b.q, b.offset, nil
}

// Constraint is anything that can add its penalty or objective terms to a Builder.
// Encode expands its own objective and degree constraints through this interface,
// and callers may pass extra constraints to Encode.
type Constraint interface {
	Expand(b *Builder) error
}

// Term is one weighted variable of a linear expression.
type Term struct {
	Var  int
	Coef float64
}

// LinearEquality penalizes Weight·(Σ Coef·x_Var − Target)².
//
// Expansion, with x² = x:
//
//	diagonal  i    += W·cᵢ² − 2·W·t·cᵢ
//	pair      i<j  += 2·W·cᵢ·cⱼ
//	offset         += W·t²
//
// Terms naming the same variable are merged before expansion, so a self-loop
// arc appearing in both the outgoing and incoming sums of a node cancels out.
type LinearEquality struct {
	Terms  []Term
	Target float64
	Weight float64
}

// Expand implements Constraint.
// Complexity: O(k²) for k distinct variables.
func (c LinearEquality) Expand(b *Builder) error {
	if c.Weight < 0 || math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) {
		return &InputError{Field: "constraint", Value: fmt.Sprint(c.Weight), Reason: "weight must be finite and non-negative"}
	}
	terms, err := mergeTerms(c.Terms, b.N())
	if err != nil {
		return err
	}

	w, t := c.Weight, c.Target
	for _, ti := range terms {
		if err = b.AddLinear(ti.Var, w*ti.Coef*ti.Coef-2*w*t*ti.Coef); err != nil {
			return err
		}
	}
	for a := 0; a < len(terms); a++ {
		for z := a + 1; z < len(terms); z++ {
			if err = b.AddQuadratic(terms[a].Var, terms[z].Var, 2*w*terms[a].Coef*terms[z].Coef); err != nil {
				return err
			}
		}
	}

	return b.AddConstant(w * t * t)
}

// mergeTerms sums coefficients per variable, keeping first-appearance order and
// dropping variables whose net coefficient is zero.
func mergeTerms(in []Term, n int) ([]Term, error) {
	pos := make(map[int]int, len(in))
	out := make([]Term, 0, len(in))
	for _, t := range in {
		if t.Var < 0 || t.Var >= n {
			return nil, &InputError{Field: "constraint", Value: fmt.Sprint(t.Var), Reason: fmt.Sprintf("variable outside [0,%d)", n)}
		}
		if p, ok := pos[t.Var]; ok {
			out[p].Coef += t.Coef
			continue
		}
		pos[t.Var] = len(out)
		out = append(out, t)
	}

	kept := out[:0]
	for _, t := range out {
		if t.Coef != 0 {
			kept = append(kept, t)
		}
	}

	return kept, nil
}

// DegreeBalance penalizes Weight·(Σout − Σin − Target)² at one node: with
// Target = +1 the node must emit one more selected arc than it absorbs, −1 the
// reverse, and 0 balances in and out.
type DegreeBalance struct {
	Node   string
	Out    []int
	In     []int
	Target float64
	Weight float64
}

// Expand implements Constraint.
func (c DegreeBalance) Expand(b *Builder) error {
	terms := make([]Term, 0, len(c.Out)+len(c.In))
	for _, i := range c.Out {
		terms = append(terms, Term{Var: i, Coef: 1})
	}
	for _, i := range c.In {
		terms = append(terms, Term{Var: i, Coef: -1})
	}
	eq := LinearEquality{Terms: terms, Target: c.Target, Weight: c.Weight}
	if err := eq.Expand(b); err != nil {
		return fmt.Errorf("qubo: degree constraint at %q: %w", c.Node, err)
	}

	return nil
}

// ArcCosts adds each variable's traversal cost to its diagonal entry.
type ArcCosts struct {
	Vars *VarIndex
}

// Expand implements Constraint.
func (c ArcCosts) Expand(b *Builder) error {
	for i := 0; i < c.Vars.Len(); i++ {
		if err := b.AddLinear(i, c.Vars.Cost(i)); err != nil {
			return fmt.Errorf("qubo: cost of %s: %w", c.Vars.Arc(i), err)
		}
	}

	return nil
}
