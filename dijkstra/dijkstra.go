package dijkstra

import (
	"container/heap"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/qroute/core"
)

// Cheapest returns a cheapest route from source to dest. A route from a vertex
// to itself is the single node with cost 0.
//
// Errors: ErrNilGraph, ErrVertexNotFound, ErrUnreachable.
func Cheapest(g *core.Graph, source, dest string) (Route, error) {
	r, err := newRunner(g, source)
	if err != nil {
		return Route{}, err
	}
	if !g.HasVertex(dest) {
		return Route{}, fmt.Errorf("%w: dest %q", ErrVertexNotFound, dest)
	}
	r.run(dest)
	if math.IsInf(r.dist[dest], 1) {
		return Route{}, fmt.Errorf("%w: %s to %s", ErrUnreachable, source, dest)
	}

	nodes := []string{dest}
	for v := dest; v != source; {
		v = r.prev[v]
		nodes = append(nodes, v)
	}
	slices.Reverse(nodes)

	return Route{Nodes: nodes, Cost: r.dist[dest]}, nil
}

// All returns the cheapest cost from source to every vertex.
//
// Errors: ErrNilGraph, ErrVertexNotFound.
func All(g *core.Graph, source string) (Distances, error) {
	r, err := newRunner(g, source)
	if err != nil {
		return nil, err
	}
	r.run("")

	return Distances(r.dist), nil
}

type arc struct {
	to   string
	cost float64
}

// runner holds the state of one search.
type runner struct {
	adj     map[string][]arc
	dist    map[string]float64
	prev    map[string]string
	visited map[string]bool
	pq      nodePQ
	seq     int
}

func newRunner(g *core.Graph, source string) (*runner, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.HasVertex(source) {
		return nil, fmt.Errorf("%w: source %q", ErrVertexNotFound, source)
	}

	vertices := g.Vertices()
	r := &runner{
		adj:     make(map[string][]arc, len(vertices)),
		dist:    make(map[string]float64, len(vertices)),
		prev:    make(map[string]string, len(vertices)),
		visited: make(map[string]bool, len(vertices)),
	}
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		r.adj[e.From] = append(r.adj[e.From], arc{to: e.To, cost: e.Cost})
		r.adj[e.To] = append(r.adj[e.To], arc{to: e.From, cost: e.Cost})
	}
	for _, v := range vertices {
		r.dist[v] = math.Inf(1)
	}
	r.dist[source] = 0
	heap.Init(&r.pq)
	r.push(source, 0)

	return r, nil
}

// run settles vertices until the heap drains or stop is settled.
func (r *runner) run(stop string) {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.visited[u] {
			continue
		}
		r.visited[u] = true
		if u == stop {
			return
		}
		r.relax(u)
	}
}

func (r *runner) relax(u string) {
	for _, a := range r.adj[u] {
		if r.visited[a.to] {
			continue
		}
		d := r.dist[u] + a.cost
		if d >= r.dist[a.to] {
			continue
		}
		r.dist[a.to] = d
		r.prev[a.to] = u
		r.push(a.to, d)
	}
}

func (r *runner) push(id string, d float64) {
	heap.Push(&r.pq, &nodeItem{id: id, dist: d, seq: r.seq})
	r.seq++
}

// nodeItem is one heap entry; stale entries are skipped on pop.
type nodeItem struct {
	id   string
	dist float64
	seq  int
}

// nodePQ is a min-heap on (dist, seq).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
