package gridgraph_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qroute/dijkstra"
	"github.com/katalvlaran/qroute/gridgraph"
)

func TestNew_Errors(t *testing.T) {
	_, err := gridgraph.New(nil, gridgraph.DefaultGridOptions())
	require.ErrorIs(t, err, gridgraph.ErrEmptyGrid)

	_, err = gridgraph.New([][]float64{{}}, gridgraph.DefaultGridOptions())
	require.ErrorIs(t, err, gridgraph.ErrEmptyGrid)

	_, err = gridgraph.New([][]float64{{1, 2}, {3}}, gridgraph.DefaultGridOptions())
	require.ErrorIs(t, err, gridgraph.ErrNonRectangular)

	_, err = gridgraph.New([][]float64{{1, math.NaN()}}, gridgraph.DefaultGridOptions())
	require.ErrorIs(t, err, gridgraph.ErrBadCost)
}

func TestGraph_Conn4(t *testing.T) {
	gg, err := gridgraph.New([][]float64{
		{1, 3},
		{1, 1},
	}, gridgraph.DefaultGridOptions())
	require.NoError(t, err)

	g := gg.Graph()
	require.Equal(t, []string{"0,0", "1,0", "0,1", "1,1"}, g.Vertices())
	require.Equal(t, 4, g.EdgeCount())

	edges := g.Edges()
	require.Equal(t, "0,0", edges[0].From)
	require.Equal(t, "1,0", edges[0].To)
	require.Equal(t, 2.0, edges[0].Cost)
	require.Equal(t, 6.0, g.TotalCost())
}

func TestGraph_BlockedCellsAndDiagonals(t *testing.T) {
	gg, err := gridgraph.New([][]float64{
		{1, 0},
		{1, 1},
	}, gridgraph.GridOptions{Conn: gridgraph.Conn8})
	require.NoError(t, err)

	g := gg.Graph()
	require.Equal(t, 3, g.VertexCount())
	require.False(t, g.HasVertex("1,0"))
	// 0,0-0,1 ; 0,0-1,1 diagonal ; 0,1-1,1
	require.Equal(t, 3, g.EdgeCount())
	require.InDelta(t, 2+math.Sqrt2, g.TotalCost(), 1e-12)

	_, err = gg.VertexID(1, 0)
	require.ErrorIs(t, err, gridgraph.ErrBlocked)
	_, err = gg.VertexID(5, 5)
	require.ErrorIs(t, err, gridgraph.ErrBlocked)
	id, err := gg.VertexID(1, 1)
	require.NoError(t, err)
	require.Equal(t, "1,1", id)
}

func TestGraph_RoutesAroundExpensiveCells(t *testing.T) {
	gg, err := gridgraph.New([][]float64{
		{1, 9, 1},
		{1, 9, 1},
		{1, 1, 1},
	}, gridgraph.DefaultGridOptions())
	require.NoError(t, err)

	r, err := dijkstra.Cheapest(gg.Graph(), "0,0", "2,0")
	require.NoError(t, err)
	require.Equal(t, []string{"0,0", "0,1", "0,2", "1,2", "2,2", "2,1", "2,0"}, r.Nodes)
	require.Equal(t, 6.0, r.Cost)
}

func TestNew_CopiesInput(t *testing.T) {
	costs := [][]float64{{1, 1}}
	gg, err := gridgraph.New(costs, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	costs[0][1] = 0

	require.True(t, gg.Open(1, 0))
	require.Equal(t, 1, gg.Graph().EdgeCount())
}
