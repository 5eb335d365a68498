package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix    = "QROUTE_"
	configEnvVar = "QROUTE_CONFIG"
)

// ErrConfigNotFound is returned when an explicitly requested file is missing.
var ErrConfigNotFound = errors.New("config: file not found")

// Loader merges defaults, a YAML file and environment variables, in that order
// of increasing priority.
type Loader struct {
	k           *koanf.Koanf
	configPaths []string
	required    bool
	envPrefix   string
	source      string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// NewLoader returns a Loader searching qroute.yaml and config/qroute.yaml.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		k:           koanf.New("."),
		configPaths: []string{"qroute.yaml", "config/qroute.yaml"},
		envPrefix:   envPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// WithConfigPaths replaces the optional search paths. The first existing file wins.
func WithConfigPaths(paths ...string) LoaderOption {
	return func(l *Loader) {
		l.configPaths = paths
	}
}

// WithFile loads exactly path and fails when it does not exist.
func WithFile(path string) LoaderOption {
	return func(l *Loader) {
		l.configPaths = []string{path}
		l.required = true
	}
}

// WithEnvPrefix sets the environment variable prefix, QROUTE_ by default.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// Load returns the merged and validated configuration.
func (l *Loader) Load() (*Config, error) {
	if err := l.k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}
	if err := l.loadFile(); err != nil {
		return nil, err
	}
	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Source is the file the last Load read, or "" when none was found.
func (l *Loader) Source() string { return l.source }

func (l *Loader) loadFile() error {
	paths := l.configPaths
	required := l.required
	if p := os.Getenv(configEnvVar); p != "" && !l.required {
		paths = []string{p}
		required = true
	}

	for _, path := range paths {
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
		if err = l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
		l.source = path

		return nil
	}
	if required {
		return fmt.Errorf("%w: %v", ErrConfigNotFound, paths)
	}

	return nil
}

// loadEnv maps QROUTE_SECTION_FIELD_NAME to section.field_name.
func (l *Loader) loadEnv() error {
	return l.k.Load(env.ProviderWithValue(l.envPrefix, ".", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, l.envPrefix))
		section, field, ok := strings.Cut(key, "_")
		if !ok || section == "config" {
			return "", nil
		}

		return section + "." + field, value
	}), nil)
}

func defaults() map[string]any {
	return map[string]any{
		"graph.path":   "",
		"graph.source": "A",
		"graph.dest":   "F",

		"encoder.penalty": 100.0,

		"solver.method":   "anneal",
		"solver.workers":  1,
		"solver.max_vars": 22,
		"solver.seed":     0,
		"solver.samples":  64,

		"anneal.steps":    50000,
		"anneal.restarts": 20,
		"anneal.temp_max": 100.0,
		"anneal.temp_min": 0.001,
		"anneal.seed":     42,

		"refine.attempts": 20,
		"refine.eps":      1e-9,

		"log.level":       "info",
		"log.format":      "console",
		"log.output":      "stderr",
		"log.max_size":    100,
		"log.max_backups": 3,
		"log.max_age":     7,

		"metrics.enabled":   false,
		"metrics.namespace": "qroute",
	}
}
