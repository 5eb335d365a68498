// Package core_test verifies vertex/edge lifecycle, insertion-order guarantees
// and JSON document decoding.
package core_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qroute/core"
)

func TestAddVertex_EmptyAndDuplicate(t *testing.T) {
	g := core.NewGraph()

	require.ErrorIs(t, g.AddVertex(""), core.ErrEmptyVertexID)
	require.NoError(t, g.AddVertex("A"))
	require.NoError(t, g.AddVertex("A"), "re-adding a label is a no-op")
	require.Equal(t, 1, g.VertexCount())
	require.True(t, g.HasVertex("A"))
	require.False(t, g.HasVertex("B"))
}

func TestAddEdge_Validation(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("A"))
	require.NoError(t, g.AddVertex("B"))

	require.ErrorIs(t, g.AddEdge("A", "Z", 1), core.ErrVertexNotFound)
	require.ErrorIs(t, g.AddEdge("", "B", 1), core.ErrEmptyVertexID)
	require.ErrorIs(t, g.AddEdge("A", "B", -1), core.ErrBadCost)
	require.ErrorIs(t, g.AddEdge("A", "B", math.NaN()), core.ErrBadCost)
	require.ErrorIs(t, g.AddEdge("A", "B", math.Inf(1)), core.ErrBadCost)

	require.NoError(t, g.AddEdge("A", "B", 0))
	require.NoError(t, g.AddEdge("A", "B", 3), "duplicates are stored as given")
	require.Equal(t, 2, g.EdgeCount())
	require.Equal(t, 3.0, g.TotalCost())
}

func TestOrderIsInsertionOrder(t *testing.T) {
	g, err := core.FromLists(
		[]string{"Z", "A", "M"},
		[]core.Edge{{From: "M", To: "A", Cost: 1}, {From: "Z", To: "M", Cost: 2}},
	)
	require.NoError(t, err)
	require.Equal(t, []string{"Z", "A", "M"}, g.Vertices())
	require.Equal(t, []core.Edge{{From: "M", To: "A", Cost: 1}, {From: "Z", To: "M", Cost: 2}}, g.Edges())

	// Returned slices are copies.
	vs := g.Vertices()
	vs[0] = "mutated"
	require.Equal(t, "Z", g.Vertices()[0])
}

func TestFromLists_ReportsPosition(t *testing.T) {
	_, err := core.FromLists([]string{"A", "B"}, []core.Edge{{From: "A", To: "B", Cost: 1}, {From: "B", To: "C", Cost: 1}})
	require.ErrorIs(t, err, core.ErrVertexNotFound)
	require.Contains(t, err.Error(), "edge #1")
}

func TestConcurrentReads(t *testing.T) {
	g, err := core.FromLists([]string{"A", "B", "C"}, []core.Edge{{From: "A", To: "B", Cost: 1}, {From: "B", To: "C", Cost: 2}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Vertices()
			_ = g.Edges()
			_ = g.TotalCost()
		}()
	}
	wg.Wait()
	require.Equal(t, 3.0, g.TotalCost())
}

func TestDecode(t *testing.T) {
	const doc = `{
  "nodes": ["A", "B", "C"],
  "edges": [
    {"u": "A", "v": "B", "cost": 2},
    {"u": "B", "v": "C", "cost": 1.5}
  ]
}`
	g, err := core.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, g.Vertices())
	require.Equal(t, 3.5, g.TotalCost())
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"syntax", `{"nodes": [`, core.ErrBadDocument},
		{"unknown field", `{"nodes": [], "edges": [], "extra": 1}`, core.ErrBadDocument},
		{"missing cost", `{"nodes": ["A","B"], "edges": [{"u":"A","v":"B"}]}`, core.ErrBadDocument},
		{"unknown endpoint", `{"nodes": ["A"], "edges": [{"u":"A","v":"B","cost":1}]}`, core.ErrVertexNotFound},
		{"negative cost", `{"nodes": ["A","B"], "edges": [{"u":"A","v":"B","cost":-1}]}`, core.ErrBadCost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.Decode(strings.NewReader(tc.doc))
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes":["A","B"],"edges":[{"u":"A","v":"B","cost":4}]}`), 0o600))

	g, err := core.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, g.EdgeCount())

	_, err = core.LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
