package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex label is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrBadCost indicates a negative or non-finite edge cost.
	ErrBadCost = errors.New("core: edge cost must be finite and non-negative")

	// ErrBadDocument indicates a JSON graph document that cannot be decoded.
	ErrBadDocument = errors.New("core: malformed graph document")
)

// Edge is one input edge between two labelled vertices.
//
// The encoder treats every Edge as bidirected: it yields two arcs, From→To and
// To→From, both carrying Cost.
type Edge struct {
	// From is the tail vertex label as given by the caller.
	From string

	// To is the head vertex label as given by the caller.
	To string

	// Cost is the non-negative traversal cost.
	Cost float64
}

// Graph is the in-memory routing graph.
//
// mu guards vertices, index and edges. Duplicate edges are stored as given;
// they produce aliased decision variables downstream and are the caller's
// responsibility to avoid.
type Graph struct {
	mu sync.RWMutex

	vertices []string            // insertion order
	index    map[string]struct{} // membership
	edges    []Edge              // insertion order
}

// NewGraph creates an empty Graph.
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{
		index: make(map[string]struct{}),
	}
}
