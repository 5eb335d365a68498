package qubo_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qroute/core"
	"github.com/katalvlaran/qroute/internal/sample"
	"github.com/katalvlaran/qroute/qubo"
)

func encodeSample(t *testing.T, penalty float64, extra ...qubo.Constraint) *qubo.Problem {
	t.Helper()
	p, err := qubo.Encode(sample.Graph(), sample.Source, sample.Dest, penalty, extra...)
	require.NoError(t, err)

	return p
}

// bruteMin enumerates every assignment and returns the minimum energy with all
// assignments reaching it.
func bruteMin(p *qubo.Problem) (float64, []qubo.Vector) {
	n := p.N()
	best := math.Inf(1)
	var arg []qubo.Vector
	for s := uint64(0); s < 1<<uint(n); s++ {
		x := qubo.FromState(s, n)
		e := qubo.Energy(x, p.Q, p.Offset)
		switch {
		case e < best-qubo.Tolerance:
			best, arg = e, []qubo.Vector{x}
		case math.Abs(e-best) <= qubo.Tolerance:
			arg = append(arg, x)
		}
	}

	return best, arg
}

func selectedArcs(p *qubo.Problem, x qubo.Vector) []qubo.Arc {
	var out []qubo.Arc
	for i, b := range x {
		if b == 1 {
			out = append(out, p.Vars.Arc(i))
		}
	}

	return out
}

func TestEncode_TwoNodeMatrix(t *testing.T) {
	g, err := core.FromLists([]string{"S", "T"}, []core.Edge{{From: "S", To: "T", Cost: 1}})
	require.NoError(t, err)

	p, err := qubo.Encode(g, "S", "T", 10)
	require.NoError(t, err)
	require.Equal(t, 2, p.N())

	want := [][]float64{{-19, -20}, {-20, 61}}
	for i := range want {
		for j := range want[i] {
			v, err := p.Q.At(i, j)
			require.NoError(t, err)
			require.Equal(t, want[i][j], v, "Q[%d,%d]", i, j)
		}
	}
	require.Equal(t, 20.0, p.Offset)

	require.Equal(t, 1.0, qubo.Energy(qubo.Vector{1, 0}, p.Q, p.Offset))
	require.Equal(t, 20.0, qubo.Energy(qubo.Vector{0, 0}, p.Q, p.Offset))
	require.Equal(t, 22.0, qubo.Energy(qubo.Vector{1, 1}, p.Q, p.Offset))
}

func TestEncode_Symmetric(t *testing.T) {
	p := encodeSample(t, sample.Penalty)
	require.True(t, p.Q.IsSymmetric(0))

	p = encodeSample(t, 0.3)
	require.True(t, p.Q.IsSymmetric(0))
}

func TestEncode_VariableOrder(t *testing.T) {
	p := encodeSample(t, sample.Penalty)
	require.Equal(t, 2*len(sample.Edges), p.N())

	for k, e := range sample.Edges {
		require.Equal(t, qubo.Arc{From: e.From, To: e.To}, p.Vars.Arc(2*k))
		require.Equal(t, qubo.Arc{From: e.To, To: e.From}, p.Vars.Arc(2*k+1))
		require.Equal(t, e.Cost, p.Vars.Cost(2*k))
		require.Equal(t, e.Cost, p.Vars.Cost(2*k+1))

		i, ok := p.Vars.Index(qubo.Arc{From: e.To, To: e.From})
		require.True(t, ok)
		require.Equal(t, 2*k+1, i)
	}
	_, ok := p.Vars.Index(qubo.Arc{From: "A", To: "F"})
	require.False(t, ok)

	require.Equal(t, []int{0, 2}, p.Vars.Outgoing("A"))
	require.Equal(t, []int{1, 3}, p.Vars.Incoming("A"))
	require.Equal(t, "A", p.Source)
	require.Equal(t, "F", p.Dest)
}

func TestEncode_InputErrors(t *testing.T) {
	empty, err := core.FromLists([]string{"A", "B"}, nil)
	require.NoError(t, err)

	cases := []struct {
		name    string
		g       *core.Graph
		src     string
		dst     string
		penalty float64
		field   string
	}{
		{"nil graph", nil, "A", "F", 10, "graph"},
		{"zero penalty", sample.Graph(), "A", "F", 0, "penalty"},
		{"negative penalty", sample.Graph(), "A", "F", -1, "penalty"},
		{"nan penalty", sample.Graph(), "A", "F", math.NaN(), "penalty"},
		{"inf penalty", sample.Graph(), "A", "F", math.Inf(1), "penalty"},
		{"same endpoints", sample.Graph(), "A", "A", 10, "source"},
		{"unknown source", sample.Graph(), "Z", "F", 10, "source"},
		{"unknown dest", sample.Graph(), "A", "Z", 10, "dest"},
		{"no edges", empty, "A", "B", 10, "edge"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := qubo.Encode(tc.g, tc.src, tc.dst, tc.penalty)
			require.Nil(t, p)
			require.ErrorIs(t, err, qubo.ErrInvalidInput)

			var ie *qubo.InputError
			require.True(t, errors.As(err, &ie))
			require.Equal(t, tc.field, ie.Field)
		})
	}
}

func TestEnergy_MatchesObjective(t *testing.T) {
	const penalty = 30.0
	p := encodeSample(t, penalty)
	r := rand.New(rand.NewSource(3))

	direct := func(x qubo.Vector) float64 {
		e := 0.0
		bal := make(map[string]float64)
		for i, b := range x {
			if b == 0 {
				continue
			}
			a := p.Vars.Arc(i)
			e += p.Vars.Cost(i)
			bal[a.From]++
			bal[a.To]--
		}
		for _, node := range sample.Nodes {
			d := bal[node]
			switch node {
			case sample.Source:
				d--
			case sample.Dest:
				d++
			}
			e += penalty * d * d
		}

		return e
	}

	for k := 0; k < 200; k++ {
		x := qubo.RandomVector(p.N(), r)
		require.InDelta(t, direct(x), qubo.Energy(x, p.Q, p.Offset), qubo.Tolerance, "x=%s", x)
	}
}

func TestFlipDelta_MatchesFullRecompute(t *testing.T) {
	p := encodeSample(t, sample.Penalty)
	r := rand.New(rand.NewSource(11))

	for k := 0; k < 50; k++ {
		x := qubo.RandomVector(p.N(), r)
		before := x.Clone()
		for i := 0; i < p.N(); i++ {
			require.NoError(t, qubo.CheckDelta(x, p.Q, p.Offset, i, qubo.Tolerance))
		}
		require.True(t, before.Equal(x), "CheckDelta must not modify x")
	}
}

func TestCheckDelta_ReportsAsymmetry(t *testing.T) {
	// FlipDelta assumes symmetry; a skewed matrix exposes the mismatch.
	p := encodeSample(t, sample.Penalty)
	q := p.Q.CloneDense()
	require.NoError(t, q.AddAt(0, 2, 5))

	x := make(qubo.Vector, p.N())
	x[2] = 1
	err := qubo.CheckDelta(x, q, p.Offset, 0, qubo.Tolerance)
	require.ErrorIs(t, err, qubo.ErrNumericInconsistency)

	var ne *qubo.NumericInconsistencyError
	require.True(t, errors.As(err, &ne))
	require.Equal(t, 0, ne.Bit)
}

func TestEncode_GlobalOptimumIsCheapestRoute(t *testing.T) {
	p := encodeSample(t, sample.Penalty)

	best, arg := bruteMin(p)
	require.InDelta(t, sample.OptimalCost, best, qubo.Tolerance)
	require.Len(t, arg, 1)
	require.Equal(t, []qubo.Arc{{From: "A", To: "B"}, {From: "B", To: "D"}, {From: "D", To: "F"}}, selectedArcs(p, arg[0]))
}

func TestEncode_DisconnectedNeverBelowPenalty(t *testing.T) {
	const penalty = 10.0
	p, err := qubo.Encode(sample.Disconnected(), "S", "T", penalty)
	require.NoError(t, err)

	best, _ := bruteMin(p)
	require.GreaterOrEqual(t, best, penalty)
}

func TestEncode_LowPenaltyPrefersViolation(t *testing.T) {
	// With P below typical edge costs, the empty selection (energy 2P) beats the
	// cheapest route. This is a property of penalty encodings.
	p := encodeSample(t, 1)

	best, arg := bruteMin(p)
	require.Less(t, best, sample.OptimalCost)
	require.InDelta(t, 2.0, qubo.Energy(make(qubo.Vector, p.N()), p.Q, p.Offset), qubo.Tolerance)
	for _, x := range arg {
		require.NotEqual(t, 3, x.Ones())
	}
}

func TestEncode_ExtraConstraint(t *testing.T) {
	// Forbid B→D: the optimum moves to A→C→D→F.
	p0 := encodeSample(t, sample.Penalty)
	bd, ok := p0.Vars.Index(qubo.Arc{From: "B", To: "D"})
	require.True(t, ok)

	ban := qubo.LinearEquality{Terms: []qubo.Term{{Var: bd, Coef: 1}}, Target: 0, Weight: 100}
	p := encodeSample(t, sample.Penalty, ban)
	require.True(t, p.Q.IsSymmetric(0))

	best, arg := bruteMin(p)
	require.InDelta(t, 10.0, best, qubo.Tolerance)
	require.Len(t, arg, 1)
	require.Equal(t, []qubo.Arc{{From: "A", To: "C"}, {From: "C", To: "D"}, {From: "D", To: "F"}}, selectedArcs(p, arg[0]))
}

func TestEncode_ExtraConstraintError(t *testing.T) {
	bad := qubo.LinearEquality{Terms: []qubo.Term{{Var: 99, Coef: 1}}, Weight: 1}
	_, err := qubo.Encode(sample.Graph(), sample.Source, sample.Dest, sample.Penalty, bad)
	require.ErrorIs(t, err, qubo.ErrInvalidInput)

	neg := qubo.LinearEquality{Terms: []qubo.Term{{Var: 0, Coef: 1}}, Weight: -1}
	_, err = qubo.Encode(sample.Graph(), sample.Source, sample.Dest, sample.Penalty, neg)
	require.ErrorIs(t, err, qubo.ErrInvalidInput)
}

func TestLinearEquality_MatchesDirectEvaluation(t *testing.T) {
	const n = 4
	eq := qubo.LinearEquality{
		// Variable 1 appears twice and nets to 3.
		Terms:  []qubo.Term{{Var: 0, Coef: 2}, {Var: 1, Coef: 1}, {Var: 2, Coef: -1.5}, {Var: 1, Coef: 2}, {Var: 3, Coef: 0.5}},
		Target: 1.5,
		Weight: 4,
	}
	b, err := qubo.NewBuilder(n)
	require.NoError(t, err)
	require.NoError(t, eq.Expand(b))
	q, offset, err := b.Build()
	require.NoError(t, err)
	require.True(t, q.IsSymmetric(0))

	for s := uint64(0); s < 1<<n; s++ {
		x := qubo.FromState(s, n)
		sum := -eq.Target
		for _, term := range eq.Terms {
			sum += term.Coef * float64(x[term.Var])
		}
		require.InDelta(t, eq.Weight*sum*sum, qubo.Energy(x, q, offset), qubo.Tolerance, "x=%s", x)
	}
}

func TestEncode_SelfLoopCancels(t *testing.T) {
	g, err := core.FromLists([]string{"S", "T"}, []core.Edge{{From: "S", To: "T", Cost: 1}, {From: "S", To: "S", Cost: 2}})
	require.NoError(t, err)
	p, err := qubo.Encode(g, "S", "T", 10)
	require.NoError(t, err)

	// The self-loop only contributes its cost.
	for _, i := range []int{2, 3} {
		x := qubo.Vector{1, 0, 0, 0}
		x[i] = 1
		require.InDelta(t, 3.0, qubo.Energy(x, p.Q, p.Offset), qubo.Tolerance)
	}
	i, ok := p.Vars.Index(qubo.Arc{From: "S", To: "S"})
	require.True(t, ok)
	require.Equal(t, 3, i, "duplicate arcs resolve to the last variable")
}

func TestProblem_EnergyAndNegated(t *testing.T) {
	p := encodeSample(t, sample.Penalty)

	_, err := p.Energy(qubo.Vector{1, 0})
	require.ErrorIs(t, err, qubo.ErrVectorLength)

	x := make(qubo.Vector, p.N())
	x[0], x[4], x[8] = 1, 1, 1
	e, err := p.Energy(x)
	require.NoError(t, err)
	require.InDelta(t, sample.OptimalCost, e, qubo.Tolerance)

	neg, off, err := p.Negated()
	require.NoError(t, err)
	require.InDelta(t, -e, qubo.Energy(x, neg, off), qubo.Tolerance)
}

func TestVector(t *testing.T) {
	require.Equal(t, qubo.Vector{1, 0, 0}, qubo.FromState(4, 3))
	require.Equal(t, qubo.Vector{0, 1, 1}, qubo.FromState(3, 3))

	v := qubo.Vector{0, 1, 1, 0}
	require.Equal(t, "0110", v.String())
	require.Equal(t, 2, v.Ones())

	c := v.Clone()
	c.Flip(0)
	require.Equal(t, qubo.Vector{1, 1, 1, 0}, c)
	require.Equal(t, uint8(0), v[0], "Clone is independent")
	require.False(t, v.Equal(c))
	require.False(t, v.Equal(v[:3]))
	require.Equal(t, -1, v.NonBinary())

	w := qubo.Vector{0, 2, 1}
	require.Equal(t, 1, w.NonBinary())
	w.Flip(1)
	require.Equal(t, qubo.Vector{0, 0, 1}, w, "a non-zero entry flips to 0")
	w.Flip(1)
	require.Equal(t, qubo.Vector{0, 1, 1}, w)

	a := qubo.RandomVector(32, rand.New(rand.NewSource(9)))
	b := qubo.RandomVector(32, rand.New(rand.NewSource(9)))
	require.True(t, a.Equal(b))
}
