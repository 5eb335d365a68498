package qubo

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qroute/core"
)

// Encode turns a cheapest-simple-path query into a QUBO.
//
// Every undirected edge {u,v} with cost c yields two variables (see VarIndex):
// selecting one means traversing that arc at cost c. The energy is
//
//	E(x) = Σ cost·x  +  Σ_node penalty·(out(node) − in(node) − target(node))²
//
// with target +1 at source, −1 at dest and 0 elsewhere. Any assignment that
// selects a simple source→dest path (and nothing else) has E equal to the path
// cost; every degree violation costs at least penalty. Extra constraints are
// expanded after the built-in terms and before symmetrization.
//
// Validation order: graph, penalty, endpoints, edges. Every failure is an
// *InputError.
//
// Complexity: O(V·d² + E) time for maximum degree d, O(E²) memory for Q.
func Encode(g *core.Graph, source, dest string, penalty float64, extra ...Constraint) (*Problem, error) {
	if g == nil {
		return nil, &InputError{Field: "graph", Value: "<nil>", Reason: "graph is nil"}
	}
	if penalty <= 0 || math.IsNaN(penalty) || math.IsInf(penalty, 0) {
		return nil, &InputError{Field: "penalty", Value: fmt.Sprint(penalty), Reason: "must be finite and positive"}
	}
	if source == dest {
		return nil, &InputError{Field: "source", Value: fmt.Sprintf("%q", source), Reason: "source and dest must differ"}
	}
	if !g.HasVertex(source) {
		return nil, &InputError{Field: "source", Value: fmt.Sprintf("%q", source), Reason: "not a node of the graph"}
	}
	if !g.HasVertex(dest) {
		return nil, &InputError{Field: "dest", Value: fmt.Sprintf("%q", dest), Reason: "not a node of the graph"}
	}

	edges := g.Edges()
	if len(edges) == 0 {
		return nil, &InputError{Field: "edge", Value: "[]", Reason: "graph has no edges"}
	}
	for k, e := range edges {
		if !g.HasVertex(e.From) || !g.HasVertex(e.To) {
			return nil, &InputError{Field: "edge", Value: fmt.Sprintf("#%d %s-%s", k, e.From, e.To), Reason: "references an unknown node"}
		}
		if e.Cost < 0 || math.IsNaN(e.Cost) || math.IsInf(e.Cost, 0) {
			return nil, &InputError{Field: "edge", Value: fmt.Sprintf("#%d %s-%s", k, e.From, e.To), Reason: "cost must be finite and non-negative"}
		}
	}

	vars := NewVarIndex(edges)
	b, err := NewBuilder(vars.Len())
	if err != nil {
		return nil, err
	}

	constraints := make([]Constraint, 0, 1+g.VertexCount()+len(extra))
	constraints = append(constraints, ArcCosts{Vars: vars})
	for _, node := range g.Vertices() {
		constraints = append(constraints, DegreeBalance{
			Node:   node,
			Out:    vars.Outgoing(node),
			In:     vars.Incoming(node),
			Target: degreeTarget(node, source, dest),
			Weight: penalty,
		})
	}
	constraints = append(constraints, extra...)

	for _, c := range constraints {
		if err = c.Expand(b); err != nil {
			return nil, err
		}
	}

	q, offset, err := b.Build()
	if err != nil {
		return nil, err
	}

	return &Problem{Q: q, Offset: offset, Vars: vars, Source: source, Dest: dest, Penalty: penalty}, nil
}

func degreeTarget(node, source, dest string) float64 {
	switch node {
	case source:
		return 1
	case dest:
		return -1
	default:
		return 0
	}
}
