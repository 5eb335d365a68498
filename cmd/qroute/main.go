// Command qroute finds a cheap simple route between two nodes of a cost
// graph by minimizing its QUBO encoding.
//
// Usage:
//
//	qroute [-config qroute.yaml] [-graph network.json] [-source A] [-dest F]
//	       [-method exhaustive|anneal|sampler] [-penalty P] [-seed S] [-workers N] [-metrics]
//
// Settings come from defaults, the YAML file, QROUTE_* variables and finally
// the flags. Without a graph file the built-in six-node network is routed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/katalvlaran/qroute/config"
	"github.com/katalvlaran/qroute/core"
	"github.com/katalvlaran/qroute/internal/sample"
	"github.com/katalvlaran/qroute/logging"
	"github.com/katalvlaran/qroute/metrics"
	"github.com/katalvlaran/qroute/pipeline"
	"github.com/katalvlaran/qroute/route"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "qroute:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("qroute", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "YAML configuration file")
	graphPath := fs.String("graph", "", "JSON graph document")
	source := fs.String("source", "", "start node")
	dest := fs.String("dest", "", "end node")
	method := fs.String("method", "", "exhaustive, anneal or sampler")
	penalty := fs.Float64("penalty", 0, "constraint penalty weight")
	seed := fs.Int64("seed", 0, "seed for the anneal and sampler methods")
	workers := fs.Int("workers", -1, "concurrent restarts or refinements, 0 for GOMAXPROCS")
	withMetrics := fs.Bool("metrics", false, "print Prometheus metrics after the run")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var loaderOpts []config.LoaderOption
	if *cfgPath != "" {
		loaderOpts = append(loaderOpts, config.WithFile(*cfgPath))
	}
	loader := config.NewLoader(loaderOpts...)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyFlags(cfg, set, flagValues{
		graph: *graphPath, source: *source, dest: *dest, method: *method,
		penalty: *penalty, seed: *seed, workers: *workers, metrics: *withMetrics,
	})
	if err = cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if src := loader.Source(); src != "" {
		log.Debug("configuration loaded", zap.String("file", src))
	}

	g, err := loadGraph(cfg.Graph.Path)
	if err != nil {
		return err
	}

	opts, err := cfg.PipelineOptions()
	if err != nil {
		return err
	}

	solverOpts := []pipeline.Option{pipeline.WithLogger(log)}
	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		solverOpts = append(solverOpts, pipeline.WithMetrics(metrics.New(reg, cfg.Metrics.Namespace)))
	}
	var sampler pipeline.Sampler
	if opts.Method == pipeline.MethodSampler {
		sampler = pipeline.RandomSampler{Shots: cfg.Solver.Samples, Seed: cfg.Solver.Seed}
	}

	res, err := pipeline.New(sampler, solverOpts...).Solve(ctx, g, cfg.Graph.Source, cfg.Graph.Dest, opts)
	if err != nil {
		return err
	}
	report(stdout, res)

	if reg != nil {
		fmt.Fprintln(stdout)
		return metrics.Dump(stdout, reg)
	}

	return nil
}

type flagValues struct {
	graph, source, dest, method string
	penalty                     float64
	seed                        int64
	workers                     int
	metrics                     bool
}

// applyFlags overrides cfg with the flags present on the command line.
func applyFlags(cfg *config.Config, set map[string]bool, v flagValues) {
	if set["graph"] {
		cfg.Graph.Path = v.graph
	}
	if set["source"] {
		cfg.Graph.Source = v.source
	}
	if set["dest"] {
		cfg.Graph.Dest = v.dest
	}
	if set["method"] {
		cfg.Solver.Method = v.method
	}
	if set["penalty"] {
		cfg.Encoder.Penalty = v.penalty
	}
	if set["seed"] {
		cfg.Solver.Seed = v.seed
		cfg.Anneal.Seed = v.seed
	}
	if set["workers"] {
		cfg.Solver.Workers = v.workers
	}
	if set["metrics"] {
		cfg.Metrics.Enabled = v.metrics
	}
}

func loadGraph(path string) (*core.Graph, error) {
	if path == "" {
		return sample.Graph(), nil
	}

	return core.LoadFile(path)
}

func report(w io.Writer, res *pipeline.Result) {
	status := "INVALID"
	if res.Found {
		status = "VALID"
	}
	fmt.Fprintf(w, "method: %s (%d variables, %d candidates, %s)\n", res.Method, res.Vars, res.Candidates, res.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "status: %s\n", status)
	if !res.Found {
		fmt.Fprintf(w, "reason: %s\n", res.Verdict.Reason)
		fmt.Fprintf(w, "energy: %.4f\n", res.Energy)
		fmt.Fprintln(w, hint(res.Method))
	} else {
		fmt.Fprintf(w, "path:   %s\n", route.Format(res.Path.Arcs))
		fmt.Fprintf(w, "cost:   %.4f\n", res.Cost)
		fmt.Fprintf(w, "energy: %.4f\n", res.Energy)
	}
	if res.Reference == nil {
		fmt.Fprintln(w, "classical: unreachable")
		return
	}
	fmt.Fprintf(w, "classical: %s (cost %.4f, gap %.4f)\n", strings.Join(res.Reference.Nodes, " -> "), res.Reference.Cost, res.Gap)
}

func hint(m pipeline.Method) string {
	switch m {
	case pipeline.MethodSampler:
		return "no valid path found, try increasing solver.samples or refine.attempts"
	case pipeline.MethodAnneal:
		return "no valid path found, try increasing anneal.steps, anneal.restarts or encoder.penalty"
	default:
		return "no valid path found, try increasing encoder.penalty"
	}
}
