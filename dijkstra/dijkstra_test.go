package dijkstra_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qroute/core"
	"github.com/katalvlaran/qroute/dijkstra"
	"github.com/katalvlaran/qroute/internal/sample"
)

func TestCheapest_Sample(t *testing.T) {
	r, err := dijkstra.Cheapest(sample.Graph(), sample.Source, sample.Dest)
	require.NoError(t, err)
	require.Equal(t, sample.OptimalRoute, r.Nodes)
	require.Equal(t, sample.OptimalCost, r.Cost)
}

func TestCheapest_Reversed(t *testing.T) {
	r, err := dijkstra.Cheapest(sample.Graph(), "F", "A")
	require.NoError(t, err)
	require.Equal(t, []string{"F", "D", "B", "A"}, r.Nodes)
	require.Equal(t, sample.OptimalCost, r.Cost)
}

func TestCheapest_SameVertex(t *testing.T) {
	r, err := dijkstra.Cheapest(sample.Graph(), "C", "C")
	require.NoError(t, err)
	require.Equal(t, []string{"C"}, r.Nodes)
	require.Zero(t, r.Cost)
}

func TestCheapest_TiesResolveByPushOrder(t *testing.T) {
	g, err := core.FromLists(
		[]string{"S", "X", "Y", "T"},
		[]core.Edge{{From: "S", To: "X", Cost: 1}, {From: "S", To: "Y", Cost: 1}, {From: "X", To: "T", Cost: 1}, {From: "Y", To: "T", Cost: 1}},
	)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		r, err := dijkstra.Cheapest(g, "S", "T")
		require.NoError(t, err)
		require.Equal(t, []string{"S", "X", "T"}, r.Nodes)
	}
}

func TestCheapest_IgnoresSelfLoopsAndUsesCheaperDuplicate(t *testing.T) {
	g, err := core.FromLists(
		[]string{"S", "T"},
		[]core.Edge{{From: "S", To: "S", Cost: 0}, {From: "S", To: "T", Cost: 4}, {From: "T", To: "S", Cost: 1}},
	)
	require.NoError(t, err)

	r, err := dijkstra.Cheapest(g, "S", "T")
	require.NoError(t, err)
	require.Equal(t, 1.0, r.Cost)
}

func TestCheapest_Errors(t *testing.T) {
	_, err := dijkstra.Cheapest(nil, "A", "B")
	require.ErrorIs(t, err, dijkstra.ErrNilGraph)

	_, err = dijkstra.Cheapest(sample.Graph(), "Z", "A")
	require.ErrorIs(t, err, dijkstra.ErrVertexNotFound)

	_, err = dijkstra.Cheapest(sample.Graph(), "A", "Z")
	require.ErrorIs(t, err, dijkstra.ErrVertexNotFound)

	_, err = dijkstra.Cheapest(sample.Disconnected(), "S", "T")
	require.ErrorIs(t, err, dijkstra.ErrUnreachable)
}

func TestAll(t *testing.T) {
	d, err := dijkstra.All(sample.Graph(), "A")
	require.NoError(t, err)
	require.Equal(t, dijkstra.Distances{"A": 0, "B": 2, "C": 3, "D": 5, "E": 4, "F": 7}, d)

	d, err = dijkstra.All(sample.Disconnected(), "S")
	require.NoError(t, err)
	require.True(t, d.Reachable("Y"))
	require.False(t, d.Reachable("T"))
	require.True(t, math.IsInf(d["T"], 1))
	require.False(t, d.Reachable("nope"))
}
