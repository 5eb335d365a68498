// Package gridgraph turns a rectangular grid of cell costs into a routing
// core.Graph.
//
// What:
//
//   - Every open cell (cost > 0 and finite) becomes a vertex "x,y".
//   - Neighbouring open cells are joined by one undirected edge whose cost is
//     the mean of the two cell costs, scaled by √2 for diagonal steps.
//   - Cells with cost ≤ 0 are blocked and produce no vertex.
//
// Vertices are added row by row and edges in scan order, so the QUBO variable
// layout of an encoded grid is stable.
//
// Complexity:
//
//   - New:   O(W×H).
//   - Graph: O(W×H×d) time and memory, d = 4 or 8.
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrBadCost: a cell cost is NaN or infinite.
//   - ErrBlocked: Cell or VertexID addressed a blocked or out-of-range cell.
package gridgraph

import "errors"

var (
	ErrEmptyGrid      = errors.New("gridgraph: input grid must have at least one row and one column")
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	ErrBadCost        = errors.New("gridgraph: cell cost must be finite")
	ErrBlocked        = errors.New("gridgraph: cell is blocked or out of range")
)

// Connectivity selects the neighbourhood of a cell.
type Connectivity int

const (
	// Conn4 joins orthogonal neighbours.
	Conn4 Connectivity = iota
	// Conn8 also joins diagonal neighbours.
	Conn8
)

// GridOptions configures New.
type GridOptions struct {
	Conn Connectivity
}

// DefaultGridOptions uses 4-connectivity.
func DefaultGridOptions() GridOptions {
	return GridOptions{Conn: Conn4}
}

// GridGraph is an immutable cost grid.
type GridGraph struct {
	Width, Height int
	Conn          Connectivity

	costs [][]float64 // [y][x]
}
