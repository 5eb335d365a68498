// Package route turns binary solutions back into routes and judges them.
//
// Decode never fails: every assignment yields a Path whose Cost sums all
// selected arcs. Whether that path is a simple source→dest route is a separate
// question answered by IsValidSimplePath and Check. Cleanup removes
// arc/reverse-arc pairs that degree balance alone cannot rule out.
package route

import (
	"strings"

	"github.com/katalvlaran/qroute/qubo"
)

// Path is a decoded candidate route.
type Path struct {
	// Arcs holds the walked prefix followed by every other selected arc in
	// variable order.
	Arcs []qubo.Arc

	// Cost is the sum of costs of all selected arcs, walked or not.
	Cost float64

	// Walked is the length of the prefix reached by following arcs from the source.
	Walked int

	// Branching lists nodes with more than one selected outgoing arc, in the
	// order their first such arc appears.
	Branching []string
}

// Decode reconstructs a candidate route from x.
//
// The walk starts at source and repeatedly follows the lowest-index unused
// selected arc leaving the current node. It stops at dest, at a node with no
// unused outgoing arc, or after len(selected) steps. A node with several
// outgoing selected arcs cannot lie on a simple route and is reported in
// Branching rather than silently resolved.
//
// Complexity: O(n).
func Decode(x qubo.Vector, vars *qubo.VarIndex, source, dest string) Path {
	var p Path
	selected := make([]int, 0, x.Ones())
	for i, b := range x {
		if b != 0 {
			selected = append(selected, i)
			p.Cost += vars.Cost(i)
		}
	}
	if len(selected) == 0 {
		return p
	}

	succ := make(map[string][]int, len(selected))
	for _, i := range selected {
		tail := vars.Arc(i).From
		succ[tail] = append(succ[tail], i)
		if len(succ[tail]) == 2 {
			p.Branching = append(p.Branching, tail)
		}
	}

	used := make(map[int]struct{}, len(selected))
	p.Arcs = make([]qubo.Arc, 0, len(selected))
	cur := source
	for steps := 0; steps < len(selected); steps++ {
		next := -1
		for _, i := range succ[cur] {
			if _, ok := used[i]; !ok {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}
		used[next] = struct{}{}
		a := vars.Arc(next)
		p.Arcs = append(p.Arcs, a)
		cur = a.To
		if cur == dest {
			break
		}
	}
	p.Walked = len(p.Arcs)

	for _, i := range selected {
		if _, ok := used[i]; !ok {
			p.Arcs = append(p.Arcs, vars.Arc(i))
		}
	}

	return p
}

// Cleanup returns a copy of x with every selected arc/reverse pair removed,
// repeating until no pair remains. Removing pairs never changes any node's
// degree balance and only lowers cost.
//
// The reverse of variable i is looked up on its own edge first (i^1), then
// through vars.Index, so pairs on duplicate edges are removed whichever copy
// each arc was selected on.
//
// Complexity: O(n) per pass; at most n/2 passes.
func Cleanup(x qubo.Vector, vars *qubo.VarIndex) qubo.Vector {
	out := x.Clone()
	for changed := true; changed; {
		changed = false
		for i := range out {
			if out[i] == 0 {
				continue
			}
			j, ok := i ^ 1, true
			if out[j] == 0 {
				j, ok = vars.Index(vars.Arc(i).Reverse())
			}
			if ok && out[j] != 0 {
				out[i], out[j] = 0, 0
				changed = true
			}
		}
	}

	return out
}

// Nodes lists the visited nodes of arcs: every tail, then the last head.
func Nodes(arcs []qubo.Arc) []string {
	if len(arcs) == 0 {
		return nil
	}
	out := make([]string, 0, len(arcs)+1)
	for _, a := range arcs {
		out = append(out, a.From)
	}

	return append(out, arcs[len(arcs)-1].To)
}

// Format renders arcs as "A -> B -> D -> F".
func Format(arcs []qubo.Arc) string {
	return strings.Join(Nodes(arcs), " -> ")
}
