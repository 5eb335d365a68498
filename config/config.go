// Package config loads the qroute command configuration from defaults, an
// optional YAML file and QROUTE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/qroute/anneal"
	"github.com/katalvlaran/qroute/localsearch"
	"github.com/katalvlaran/qroute/logging"
	"github.com/katalvlaran/qroute/pipeline"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full command configuration.
type Config struct {
	Graph   GraphConfig    `koanf:"graph"`
	Encoder EncoderConfig  `koanf:"encoder"`
	Solver  SolverConfig   `koanf:"solver"`
	Anneal  AnnealConfig   `koanf:"anneal"`
	Refine  RefineConfig   `koanf:"refine"`
	Log     logging.Config `koanf:"log"`
	Metrics MetricsConfig  `koanf:"metrics"`
}

// GraphConfig names the input network. An empty Path selects the built-in
// six-node demo network.
type GraphConfig struct {
	Path   string `koanf:"path"`
	Source string `koanf:"source" validate:"required"`
	Dest   string `koanf:"dest" validate:"required,nefield=Source"`
}

// EncoderConfig holds the constraint penalty weight.
type EncoderConfig struct {
	Penalty float64 `koanf:"penalty" validate:"gt=0"`
}

// SolverConfig selects the method and its shared knobs.
type SolverConfig struct {
	Method  string `koanf:"method" validate:"oneof=exhaustive anneal sampler"`
	Workers int    `koanf:"workers" validate:"gte=0"`
	MaxVars int    `koanf:"max_vars" validate:"gte=0,lte=62"`
	Seed    int64  `koanf:"seed"`
	Samples int    `koanf:"samples" validate:"gte=1"`
}

type AnnealConfig struct {
	Steps    int     `koanf:"steps" validate:"gte=1"`
	Restarts int     `koanf:"restarts" validate:"gte=1"`
	TempMax  float64 `koanf:"temp_max" validate:"gt=0"`
	TempMin  float64 `koanf:"temp_min" validate:"gt=0,ltefield=TempMax"`
	Seed     int64   `koanf:"seed"`
}

type RefineConfig struct {
	Attempts int     `koanf:"attempts" validate:"gte=1"`
	Eps      float64 `koanf:"eps" validate:"gte=0"`
}

// MetricsConfig toggles the Prometheus text dump printed after a run.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace" validate:"required_if=Enabled true"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their configuration keys.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	return v
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// fieldKeys names the sibling fields referenced by cross-field tags.
var fieldKeys = map[string]string{
	"Source":  "source",
	"TempMax": "temp_max",
}

func formatFieldError(e validator.FieldError) string {
	key := e.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}

	switch e.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", key)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", key, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", key, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", key, e.Param())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", key, fieldKeys[e.Param()])
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", key, fieldKeys[e.Param()])
	default:
		return fmt.Sprintf("%s is invalid", key)
	}
}

// PipelineOptions converts the solver sections into pipeline options.
func (c *Config) PipelineOptions() (pipeline.Options, error) {
	m, err := pipeline.ParseMethod(c.Solver.Method)
	if err != nil {
		return pipeline.Options{}, err
	}

	return pipeline.Options{
		Method:  m,
		Penalty: c.Encoder.Penalty,
		Anneal: anneal.Options{
			Steps:    c.Anneal.Steps,
			Restarts: c.Anneal.Restarts,
			TempMax:  c.Anneal.TempMax,
			TempMin:  c.Anneal.TempMin,
			Seed:     c.Anneal.Seed,
			Workers:  c.Solver.Workers,
		},
		Refine: localsearch.Options{
			Attempts: c.Refine.Attempts,
			Eps:      c.Refine.Eps,
		},
		MaxVars: c.Solver.MaxVars,
		Seed:    c.Solver.Seed,
		Workers: c.Solver.Workers,
	}, nil
}
