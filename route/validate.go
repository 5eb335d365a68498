package route

import "github.com/katalvlaran/qroute/qubo"

// Reason explains why a path is not a simple source→dest route.
type Reason int

// Reason values; ReasonNone means valid.
const (
	ReasonNone Reason = iota
	ReasonEmpty
	ReasonWrongStart
	ReasonWrongEnd
	ReasonDiscontinuous
	ReasonCycle
	ReasonBranching
)

var reasonNames = [...]string{
	ReasonNone:          "none",
	ReasonEmpty:         "empty",
	ReasonWrongStart:    "wrong start",
	ReasonWrongEnd:      "wrong end",
	ReasonDiscontinuous: "discontinuous",
	ReasonCycle:         "cycle",
	ReasonBranching:     "branching",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}

	return reasonNames[r]
}

// Verdict is the outcome of Check.
type Verdict struct {
	Valid  bool
	Reason Reason
}

// IsValidSimplePath reports whether arcs form a simple route from source to
// dest: non-empty, starting at source, ending at dest, each arc's head equal to
// the next arc's tail, and no node visited twice. Heads count as visits too, so
// a route that passes through dest before its last arc is rejected, not only
// one that repeats a tail.
func IsValidSimplePath(arcs []qubo.Arc, source, dest string) bool {
	return reasonOf(arcs, source, dest) == ReasonNone
}

// Check judges a decoded path. Branching is reported ahead of the structural
// reason it always implies.
func Check(p Path, source, dest string) Verdict {
	var r Reason
	switch {
	case len(p.Arcs) == 0:
		r = ReasonEmpty
	case len(p.Branching) > 0:
		r = ReasonBranching
	default:
		r = reasonOf(p.Arcs, source, dest)
	}

	return Verdict{Valid: r == ReasonNone, Reason: r}
}

func reasonOf(arcs []qubo.Arc, source, dest string) Reason {
	if len(arcs) == 0 {
		return ReasonEmpty
	}
	if arcs[0].From != source {
		return ReasonWrongStart
	}
	if arcs[len(arcs)-1].To != dest {
		return ReasonWrongEnd
	}

	visited := make(map[string]struct{}, len(arcs)+1)
	for i, a := range arcs {
		if i+1 < len(arcs) && a.To != arcs[i+1].From {
			return ReasonDiscontinuous
		}
		if _, seen := visited[a.From]; seen {
			return ReasonCycle
		}
		visited[a.From] = struct{}{}
	}
	// Tails are distinct; the route may still pass through dest before ending there.
	if _, seen := visited[dest]; seen {
		return ReasonCycle
	}

	return ReasonNone
}
