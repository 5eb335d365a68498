// Package pipeline wires the encoder, the solvers and the decoder into one
// routing run.
//
// A run encodes the graph, applies one Method, decodes and validates the
// selected assignment, and reports a Result. Invalid input aborts the run
// before any solver starts; failing to find a valid route does not.
//
//   - exhaustive: every global minimum is decoded, the first valid one wins.
//   - anneal: the best annealed state is decoded as is.
//   - sampler: each raw sample goes through Refine and the lowest-energy valid
//     candidate wins.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/qroute/anneal"
	"github.com/katalvlaran/qroute/core"
	"github.com/katalvlaran/qroute/dijkstra"
	"github.com/katalvlaran/qroute/exhaustive"
	"github.com/katalvlaran/qroute/internal/rng"
	"github.com/katalvlaran/qroute/localsearch"
	"github.com/katalvlaran/qroute/metrics"
	"github.com/katalvlaran/qroute/qubo"
	"github.com/katalvlaran/qroute/route"
)

// seedBound matches the 31-bit seeds handed to each refinement pass.
const seedBound = 1 << 31

// Solver runs routing pipelines. It is safe for concurrent use.
type Solver struct {
	sampler Sampler
	log     *zap.Logger
	metrics *metrics.Metrics
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records runs on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Solver) { s.metrics = m }
}

// New returns a Solver. sampler may be nil when MethodSampler is never used.
func New(sampler Sampler, opts ...Option) *Solver {
	s := &Solver{sampler: sampler, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Solve finds a cheap simple route from source to dest in g.
//
// Errors:
//   - qubo.ErrInvalidInput for malformed graphs, endpoints or penalty.
//   - Option validation errors, ErrNoSampler, sampler failures, context errors.
//
// "No valid route" is reported through Result.Found, not as an error.
func (s *Solver) Solve(ctx context.Context, g *core.Graph, source, dest string, opts Options) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString(), Method: opts.Method}
	log := s.log.With(zap.String("run_id", res.RunID), zap.String("method", string(opts.Method)))

	fail := func(err error) (*Result, error) {
		s.metrics.ObserveRun(string(opts.Method), metrics.OutcomeError, time.Since(start), res.Vars, 0)
		log.Error("route run failed", zap.Error(err))

		return nil, err
	}

	if err := opts.Validate(); err != nil {
		return fail(err)
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	p, err := qubo.Encode(g, source, dest, opts.Penalty)
	if err != nil {
		return fail(fmt.Errorf("pipeline: encode: %w", err))
	}
	res.Vars = p.N()
	log.Info("encoded",
		zap.Int("vars", p.N()),
		zap.Int("edges", g.EdgeCount()),
		zap.Float64("offset", p.Offset),
		zap.Float64("penalty", p.Penalty))

	var cands []Candidate
	switch opts.Method {
	case MethodExhaustive:
		cands, err = s.exhaustive(p, opts)
	case MethodAnneal:
		cands, err = s.anneal(p, opts, log)
	case MethodSampler:
		cands, err = s.sample(ctx, p, opts)
	}
	if err != nil {
		return fail(err)
	}

	for _, c := range cands {
		s.metrics.ObserveCandidate(string(opts.Method), c.Verdict.Reason.String())
	}
	c, ok := pick(cands)
	res.fill(c, ok, p.Penalty)
	res.Candidates = len(cands)
	if err = res.compare(g, source, dest); err != nil {
		return fail(err)
	}
	res.Duration = time.Since(start)

	outcome := metrics.OutcomeNotFound
	if res.Found {
		outcome = metrics.OutcomeFound
	}
	s.metrics.ObserveRun(string(opts.Method), outcome, res.Duration, res.Vars, res.Energy)
	log.Info("solved",
		zap.Bool("found", res.Found),
		zap.String("route", route.Format(res.Path.Arcs)),
		zap.Float64("energy", res.Energy),
		zap.Float64("cost", res.Cost),
		zap.Stringer("verdict", res.Verdict.Reason),
		zap.Int("candidates", res.Candidates),
		zap.Float64("gap", res.Gap),
		zap.Duration("took", res.Duration))

	return res, nil
}

func (s *Solver) exhaustive(p *qubo.Problem, opts Options) ([]Candidate, error) {
	er, err := exhaustive.Solve(p.Q, p.Offset, exhaustive.Options{MaxVars: opts.MaxVars})
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	cands := make([]Candidate, len(er.Solutions))
	for i, x := range er.Solutions {
		cands[i] = evaluate(p, x, x, er.Energy)
	}

	return cands, nil
}

func (s *Solver) anneal(p *qubo.Problem, opts Options, log *zap.Logger) ([]Candidate, error) {
	ao := opts.Anneal
	if opts.Workers != 0 {
		ao.Workers = opts.Workers
	}
	ar, err := anneal.Anneal(p.Q, p.Offset, ao)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	s.metrics.ObserveAccepted(ar.Accepted)
	log.Debug("annealed",
		zap.Int("restart", ar.Restart),
		zap.Float64s("restart_energies", ar.RestartEnergies),
		zap.Int64("accepted", ar.Accepted))

	return []Candidate{evaluate(p, ar.Solution, ar.Solution, ar.Energy)}, nil
}

func (s *Solver) sample(ctx context.Context, p *qubo.Problem, opts Options) ([]Candidate, error) {
	if s.sampler == nil {
		return nil, ErrNoSampler
	}
	raw, err := s.sampler.Sample(ctx, p.Q, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("pipeline: sampler: %w", err)
	}
	for i, x := range raw {
		if len(x) != p.N() {
			return nil, fmt.Errorf("pipeline: sample %d has %d bits, want %d: %w", i, len(x), p.N(), qubo.ErrVectorLength)
		}
		if j := x.NonBinary(); j >= 0 {
			return nil, fmt.Errorf("pipeline: sample %d bit %d is %d: %w", i, j, x[j], qubo.ErrNonBinary)
		}
	}

	// Seeds are drawn up front so they do not depend on scheduling.
	stream := rng.Exact(opts.Seed)
	seeds := make([][2]int64, len(raw))
	for i := range seeds {
		seeds[i] = [2]int64{stream.Int63n(seedBound), stream.Int63n(seedBound)}
	}

	workers := opts.Workers
	if workers == 0 {
		workers = 1
	}
	cands := make([]Candidate, len(raw))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range raw {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := Refine(p, raw[i], opts.Refine, seeds[i])
			if err != nil {
				return err
			}
			cands[i] = c

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("pipeline: refine: %w", err)
	}

	return cands, nil
}

// Refine runs the post-processing chain applied to every raw sample:
// MultiDescend, Cleanup, MultiDescend again, then Decode and Check. seeds[0]
// and seeds[1] seed the two descents.
func Refine(p *qubo.Problem, x qubo.Vector, opts localsearch.Options, seeds [2]int64) (Candidate, error) {
	if len(x) != p.N() {
		return Candidate{}, fmt.Errorf("pipeline: got %d bits, want %d: %w", len(x), p.N(), qubo.ErrVectorLength)
	}
	if j := x.NonBinary(); j >= 0 {
		return Candidate{}, fmt.Errorf("pipeline: bit %d is %d: %w", j, x[j], qubo.ErrNonBinary)
	}
	first := opts
	first.Seed = seeds[0]
	xg, _, err := localsearch.MultiDescend(x, p.Q, p.Offset, first)
	if err != nil {
		return Candidate{}, err
	}

	xc := route.Cleanup(xg, p.Vars)

	second := opts
	second.Seed = seeds[1]
	xf, e, err := localsearch.MultiDescend(xc, p.Q, p.Offset, second)
	if err != nil {
		return Candidate{}, err
	}

	return evaluate(p, x, xf, e), nil
}

func evaluate(p *qubo.Problem, raw, x qubo.Vector, energy float64) Candidate {
	path := route.Decode(x, p.Vars, p.Source, p.Dest)

	return Candidate{
		Raw:      raw,
		Solution: x,
		Energy:   energy,
		Path:     path,
		Verdict:  route.Check(path, p.Source, p.Dest),
	}
}

// pick returns the lowest-energy valid candidate, or the lowest-energy
// candidate when none is valid. Ties keep the earliest. ok is false for an
// empty slice.
func pick(cands []Candidate) (c Candidate, ok bool) {
	best := -1
	for i := range cands {
		switch {
		case best < 0:
			best = i
		case cands[i].Verdict.Valid && !cands[best].Verdict.Valid:
			best = i
		case cands[i].Verdict.Valid == cands[best].Verdict.Valid && cands[i].Energy < cands[best].Energy:
			best = i
		}
	}
	if best < 0 {
		return Candidate{}, false
	}

	return cands[best], true
}

func (r *Result) fill(c Candidate, ok bool, penalty float64) {
	if !ok {
		r.Energy = math.Inf(1)
		r.Verdict = route.Verdict{Reason: route.ReasonEmpty}
		return
	}
	r.Solution = c.Solution
	r.Path = c.Path
	r.Verdict = c.Verdict
	r.Energy = c.Energy
	r.Cost = c.Path.Cost
	r.Found = c.Verdict.Valid
	r.BelowPenalty = c.Energy < penalty
}

// compare attaches the classical cheapest route.
func (r *Result) compare(g *core.Graph, source, dest string) error {
	ref, err := dijkstra.Cheapest(g, source, dest)
	if errors.Is(err, dijkstra.ErrUnreachable) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("pipeline: reference: %w", err)
	}
	r.Reference = &ref
	if r.Found {
		r.Gap = r.Cost - ref.Cost
	}

	return nil
}
