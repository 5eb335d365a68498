package core_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/qroute/core"
)

// ExampleGraph demonstrates building a routing graph by hand.
func ExampleGraph() {
	g := core.NewGraph()
	for _, id := range []string{"A", "B", "C"} {
		_ = g.AddVertex(id)
	}
	_ = g.AddEdge("A", "B", 2)
	_ = g.AddEdge("B", "C", 3)

	fmt.Println("Vertices:", g.Vertices())
	fmt.Println("Edges:", g.EdgeCount(), "total cost:", g.TotalCost())

	// Output:
	// Vertices: [A B C]
	// Edges: 2 total cost: 5
}

// ExampleDecode loads the JSON document format.
func ExampleDecode() {
	g, err := core.Decode(strings.NewReader(`{"nodes":["S","T"],"edges":[{"u":"S","v":"T","cost":1}]}`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(g.Edges()[0].From, "->", g.Edges()[0].To)

	// Output:
	// S -> T
}
