// File: methods.go
// Role: Vertex and edge lifecycle & queries.
//
// Determinism:
//   - Vertices() and Edges() return insertion order; variable indexing relies on it.
//
// Concurrency:
//   - Every method takes g.mu (read or write); returned slices are copies.
package core

import (
	"fmt"
	"math"
)

// AddVertex inserts a vertex label if it is not already present.
// Re-adding an existing label is a no-op.
//
// Errors: ErrEmptyVertexID.
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.index[id]; ok {
		return nil
	}
	g.index[id] = struct{}{}
	g.vertices = append(g.vertices, id)

	return nil
}

// HasVertex reports whether id was added to the graph.
// Complexity: O(1).
func (g *Graph) HasVertex(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.index[id]

	return ok
}

// AddEdge appends an edge between two existing vertices.
//
// Unlike the vertex catalog, edges are not de-duplicated: a repeated (from,to)
// pair is stored again.
//
// Errors:
//   - ErrEmptyVertexID if either endpoint is empty.
//   - ErrVertexNotFound if either endpoint was never added.
//   - ErrBadCost for negative, NaN or infinite cost.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, cost float64) error {
	if from == "" || to == "" {
		return ErrEmptyVertexID
	}
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 {
		return fmt.Errorf("edge %q→%q cost %g: %w", from, to, cost, ErrBadCost)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.index[from]; !ok {
		return fmt.Errorf("edge %q→%q: %q: %w", from, to, from, ErrVertexNotFound)
	}
	if _, ok := g.index[to]; !ok {
		return fmt.Errorf("edge %q→%q: %q: %w", from, to, to, ErrVertexNotFound)
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Cost: cost})

	return nil
}

// Vertices returns vertex labels in insertion order.
// Complexity: O(V).
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, len(g.vertices))
	copy(out, g.vertices)

	return out
}

// Edges returns edges in insertion order.
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// VertexCount returns the number of distinct vertices.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.vertices)
}

// EdgeCount returns the number of stored edges (duplicates included).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// TotalCost sums the cost of every stored edge.
// A penalty weight strictly above this value makes any constraint violation
// costlier than any selection of arcs taken once.
// Complexity: O(E).
func (g *Graph) TotalCost() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var sum float64
	for _, e := range g.edges {
		sum += e.Cost
	}

	return sum
}

// FromLists builds a Graph from ordered node and edge lists.
// The first failing vertex or edge aborts construction; the error carries its position.
//
// Complexity: O(V + E).
func FromLists(nodes []string, edges []Edge) (*Graph, error) {
	g := NewGraph()

	var (
		i   int
		err error
	)
	for i = range nodes {
		if err = g.AddVertex(nodes[i]); err != nil {
			return nil, fmt.Errorf("node #%d: %w", i, err)
		}
	}
	for i = range edges {
		if err = g.AddEdge(edges[i].From, edges[i].To, edges[i].Cost); err != nil {
			return nil, fmt.Errorf("edge #%d: %w", i, err)
		}
	}

	return g, nil
}
