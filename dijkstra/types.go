// Package dijkstra computes exact cheapest routes on a core.Graph with the
// classical label-setting algorithm.
//
// It is the reference the QUBO solvers are measured against: every edge is
// traversable in both directions at its cost, costs are non-negative, and a
// cheapest route found this way is always a simple path.
//
// Complexity:
//
//   - Time:  O((V + E) log V) with a lazy binary heap.
//   - Space: O(V + E).
//
// Determinism: equal tentative distances are settled in the order they were
// pushed, so ties between equal-cost routes resolve the same way on every run.
package dijkstra

import (
	"errors"
	"math"
)

var (
	// ErrNilGraph is returned for a nil *core.Graph.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound is returned when source or dest is not in the graph.
	ErrVertexNotFound = errors.New("dijkstra: vertex not found in graph")

	// ErrUnreachable is returned by Cheapest when dest cannot be reached.
	ErrUnreachable = errors.New("dijkstra: destination unreachable")
)

// Route is a cheapest route from its first to its last node.
type Route struct {
	Nodes []string
	Cost  float64
}

// Distances maps every vertex to its cheapest cost from the source.
// Unreachable vertices map to +Inf.
type Distances map[string]float64

// Reachable reports whether v has a finite distance.
func (d Distances) Reachable(v string) bool {
	c, ok := d[v]
	return ok && !math.IsInf(c, 1)
}
