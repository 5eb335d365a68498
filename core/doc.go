// Package core defines the routing Graph consumed by the QUBO encoder: an ordered
// set of string vertex labels and an ordered list of cost-bearing edges.
//
// Order matters. The encoder assigns decision-variable indices by edge insertion
// order (forward arc, then backward arc), so Vertices() and Edges() always return
// elements in the order they were added, never sorted.
//
// All Graph APIs are guarded by a sync.RWMutex, so a Graph may be built in one
// goroutine and read concurrently afterwards. Accessors return copies.
//
// Errors:
//
//	ErrEmptyVertexID  - vertex label is the empty string.
//	ErrVertexNotFound - an edge references a vertex that was never added.
//	ErrBadCost        - edge cost is negative, NaN or ±Inf.
//	ErrBadDocument    - JSON graph document is malformed.
//
// The JSON document format read by Decode and LoadFile:
//
//	{"nodes": ["A", "B"], "edges": [{"u": "A", "v": "B", "cost": 2}]}
package core
