package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// document mirrors the on-disk graph format:
//
//	{"nodes": ["A", "B"], "edges": [{"u": "A", "v": "B", "cost": 2}]}
type document struct {
	Nodes []string       `json:"nodes"`
	Edges []documentEdge `json:"edges"`
}

type documentEdge struct {
	U    string   `json:"u"`
	V    string   `json:"v"`
	Cost *float64 `json:"cost"`
}

// Decode reads one JSON graph document from r.
//
// A missing "cost" field is rejected rather than read as zero.
// Errors: ErrBadDocument for syntax/shape problems, plus any AddVertex/AddEdge sentinel.
func Decode(r io.Reader) (*Graph, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}

	edges := make([]Edge, len(doc.Edges))
	for i, e := range doc.Edges {
		if e.Cost == nil {
			return nil, fmt.Errorf("%w: edge #%d (%q→%q) has no cost", ErrBadDocument, i, e.U, e.V)
		}
		edges[i] = Edge{From: e.U, To: e.V, Cost: *e.Cost}
	}

	return FromLists(doc.Nodes, edges)
}

// LoadFile opens path and decodes it with Decode.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("core: open graph: %w", err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("core: load %s: %w", path, err)
	}

	return g, nil
}
