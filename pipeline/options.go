package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/qroute/anneal"
	"github.com/katalvlaran/qroute/dijkstra"
	"github.com/katalvlaran/qroute/exhaustive"
	"github.com/katalvlaran/qroute/localsearch"
	"github.com/katalvlaran/qroute/qubo"
	"github.com/katalvlaran/qroute/route"
)

// Method selects the solver behind a run.
type Method string

const (
	MethodExhaustive Method = "exhaustive"
	MethodAnneal     Method = "anneal"
	MethodSampler    Method = "sampler"
)

// Sentinel errors.
var (
	ErrUnknownMethod  = errors.New("pipeline: unknown method")
	ErrNoSampler      = errors.New("pipeline: sampler method requires a Sampler")
	ErrInvalidOptions = errors.New("pipeline: invalid options")
)

// ParseMethod maps a case-insensitive name to a Method.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodExhaustive, MethodAnneal, MethodSampler:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Options configures one Solve call.
type Options struct {
	Method  Method
	Penalty float64
	Anneal  anneal.Options
	Refine  localsearch.Options
	MaxVars int

	// Seed drives the per-sample refinement seeds of the sampler method.
	Seed int64

	// Workers, when non-zero, overrides Anneal.Workers and bounds concurrent
	// sample refinement. Results do not depend on it.
	Workers int
}

// DefaultOptions anneals with penalty 100 and the package defaults of each stage.
func DefaultOptions() Options {
	return Options{
		Method:  MethodAnneal,
		Penalty: 100,
		Anneal:  anneal.DefaultOptions(),
		Refine:  localsearch.DefaultOptions(),
		MaxVars: exhaustive.DefaultMaxVars,
		Seed:    0,
		Workers: 1,
	}
}

// Validate checks the options relevant to the selected method. Penalty is
// checked by the encoder.
func (o Options) Validate() error {
	if _, err := ParseMethod(string(o.Method)); err != nil {
		return err
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers %d < 0", ErrInvalidOptions, o.Workers)
	}
	switch o.Method {
	case MethodAnneal:
		if err := o.Anneal.Validate(); err != nil {
			return err
		}
	case MethodSampler:
		if err := o.Refine.Validate(); err != nil {
			return err
		}
	case MethodExhaustive:
		if o.MaxVars < 0 {
			return fmt.Errorf("%w: max_vars %d < 0", ErrInvalidOptions, o.MaxVars)
		}
	}

	return nil
}

// Candidate is one refined sample.
type Candidate struct {
	Raw      qubo.Vector
	Solution qubo.Vector
	Energy   float64
	Path     route.Path
	Verdict  route.Verdict
}

// Result describes a finished run. A run that finds no valid route is still a
// successful run with Found == false.
type Result struct {
	RunID  string
	Method Method
	Vars   int

	Solution qubo.Vector
	Path     route.Path
	Verdict  route.Verdict
	Energy   float64
	Cost     float64
	Found    bool

	// BelowPenalty reports Energy < penalty, the energy-only feasibility test.
	BelowPenalty bool

	// Candidates is the number of decoded candidates considered.
	Candidates int
	Duration   time.Duration

	// Reference is the classical cheapest route, nil when dest is unreachable.
	// Gap is Cost minus Reference.Cost for a found route, 0 otherwise.
	Reference *dijkstra.Route
	Gap       float64
}
