// Package sample holds the small reference network used by the demo command
// and by tests across packages.
//
//	  2     3     2
//	A --- B --- D --- F
//	 \         /     /
//	3 \     5 /     / 9
//	   \     /     /
//	    C --------'
//	    |
//	  1 |
//	    E          (dead end)
//
// The unique cheapest A→F route is A→B→D→F at cost 7. A→C→D→F (10) and
// A→C→F (12) are the longer alternatives.
package sample

import "github.com/katalvlaran/qroute/core"

// Endpoints and optimum of the reference network.
const (
	Source      = "A"
	Dest        = "F"
	OptimalCost = 7.0
	// Penalty exceeds the total edge cost (25).
	Penalty = 30.0
)

// Nodes of the reference network in insertion order.
var Nodes = []string{"A", "B", "C", "D", "E", "F"}

// Edges of the reference network in insertion order. Variable 2k/2k+1 of an
// encoding belong to Edges[k].
var Edges = []core.Edge{
	{From: "A", To: "B", Cost: 2},
	{From: "A", To: "C", Cost: 3},
	{From: "B", To: "D", Cost: 3},
	{From: "C", To: "D", Cost: 5},
	{From: "D", To: "F", Cost: 2},
	{From: "C", To: "F", Cost: 9},
	{From: "C", To: "E", Cost: 1},
}

// OptimalRoute is the node sequence of the cheapest route.
var OptimalRoute = []string{"A", "B", "D", "F"}

// Graph builds a fresh copy of the reference network.
func Graph() *core.Graph {
	g, err := core.FromLists(Nodes, Edges)
	if err != nil {
		panic("sample: " + err.Error())
	}

	return g
}

// Disconnected returns a graph whose source S cannot reach dest T.
func Disconnected() *core.Graph {
	g, err := core.FromLists(
		[]string{"S", "X", "Y", "T"},
		[]core.Edge{{From: "S", To: "X", Cost: 1}, {From: "X", To: "Y", Cost: 2}},
	)
	if err != nil {
		panic("sample: " + err.Error())
	}

	return g
}
