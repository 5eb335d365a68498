package qubo

import "github.com/katalvlaran/qroute/core"

// VarIndex is the bidirectional arc ↔ variable lookup shared by every component
// downstream of the encoder.
//
// Index order is part of the contract: input edge k yields variable 2k for the
// forward arc (From→To) and 2k+1 for the backward arc (To→From). Any component
// decoding a solution vector must use the VarIndex the encoder produced.
//
// Duplicate arcs (parallel input edges, or both arcs of a self-loop) get
// distinct variables, but Index(arc) resolves to the highest index carrying
// that arc.
type VarIndex struct {
	arcs  []Arc
	costs []float64
	index map[Arc]int

	out map[string][]int // tail → variables, ascending
	in  map[string][]int // head → variables, ascending
}

// NewVarIndex builds the variable index for edges in order.
// Complexity: O(E).
func NewVarIndex(edges []core.Edge) *VarIndex {
	n := 2 * len(edges)
	v := &VarIndex{
		arcs:  make([]Arc, 0, n),
		costs: make([]float64, 0, n),
		index: make(map[Arc]int, n),
		out:   make(map[string][]int),
		in:    make(map[string][]int),
	}
	for _, e := range edges {
		v.add(Arc{From: e.From, To: e.To}, e.Cost)
		v.add(Arc{From: e.To, To: e.From}, e.Cost)
	}

	return v
}

func (v *VarIndex) add(a Arc, cost float64) {
	i := len(v.arcs)
	v.arcs = append(v.arcs, a)
	v.costs = append(v.costs, cost)
	v.index[a] = i
	v.out[a.From] = append(v.out[a.From], i)
	v.in[a.To] = append(v.in[a.To], i)
}

// Len returns the number of variables.
func (v *VarIndex) Len() int { return len(v.arcs) }

// Arc returns the arc carried by variable i. i must be in [0, Len()).
func (v *VarIndex) Arc(i int) Arc { return v.arcs[i] }

// Cost returns the traversal cost of variable i. i must be in [0, Len()).
func (v *VarIndex) Cost(i int) float64 { return v.costs[i] }

// Index returns the variable carrying arc a.
func (v *VarIndex) Index(a Arc) (int, bool) {
	i, ok := v.index[a]

	return i, ok
}

// Arcs returns a copy of all arcs in index order.
func (v *VarIndex) Arcs() []Arc {
	out := make([]Arc, len(v.arcs))
	copy(out, v.arcs)

	return out
}

// Outgoing returns the variables whose arc leaves node, ascending.
func (v *VarIndex) Outgoing(node string) []int { return append([]int(nil), v.out[node]...) }

// Incoming returns the variables whose arc enters node, ascending.
func (v *VarIndex) Incoming(node string) []int { return append([]int(nil), v.in[node]...) }
