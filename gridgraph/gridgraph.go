package gridgraph

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qroute/core"
)

// forward offsets visit every neighbour pair exactly once.
var (
	forward4 = [][2]int{{1, 0}, {0, 1}}
	forward8 = [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}}
)

// New copies costs (indexed [y][x]) into a GridGraph.
func New(costs [][]float64, opts GridOptions) (*GridGraph, error) {
	if len(costs) == 0 || len(costs[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(costs), len(costs[0])
	cells := make([][]float64, h)
	for y, row := range costs {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		for x, c := range row {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, fmt.Errorf("%w: (%d,%d) = %v", ErrBadCost, x, y, c)
			}
		}
		cells[y] = append([]float64(nil), row...)
	}

	return &GridGraph{Width: w, Height: h, Conn: opts.Conn, costs: cells}, nil
}

// InBounds reports whether (x, y) lies inside the grid.
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.Width && y >= 0 && y < gg.Height
}

// Open reports whether (x, y) is inside the grid and not blocked.
func (gg *GridGraph) Open(x, y int) bool {
	return gg.InBounds(x, y) && gg.costs[y][x] > 0
}

// VertexID returns the vertex label of an open cell.
func (gg *GridGraph) VertexID(x, y int) (string, error) {
	if !gg.Open(x, y) {
		return "", fmt.Errorf("%w: (%d,%d)", ErrBlocked, x, y)
	}

	return vertexID(x, y), nil
}

func vertexID(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// Graph builds the routing graph of the open cells.
func (gg *GridGraph) Graph() *core.Graph {
	g := core.NewGraph()
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			if gg.Open(x, y) {
				_ = g.AddVertex(vertexID(x, y))
			}
		}
	}

	offsets := forward4
	if gg.Conn == Conn8 {
		offsets = forward8
	}
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			if !gg.Open(x, y) {
				continue
			}
			for _, d := range offsets {
				nx, ny := x+d[0], y+d[1]
				if !gg.Open(nx, ny) {
					continue
				}
				cost := (gg.costs[y][x] + gg.costs[ny][nx]) / 2
				if d[0] != 0 && d[1] != 0 {
					cost *= math.Sqrt2
				}
				// Both endpoints exist and cost is finite and positive.
				_ = g.AddEdge(vertexID(x, y), vertexID(nx, ny), cost)
			}
		}
	}

	return g
}
