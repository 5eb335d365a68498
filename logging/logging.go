// Package logging builds the zap loggers used by the command and the pipeline.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects level, encoding and destination. File output rotates with lumberjack.
type Config struct {
	Level       string `koanf:"level" validate:"oneof=debug info warn error"`
	Format      string `koanf:"format" validate:"oneof=json console"`
	Output      string `koanf:"output" validate:"oneof=stdout stderr file"`
	FilePath    string `koanf:"file_path" validate:"required_if=Output file"`
	MaxSize     int    `koanf:"max_size" validate:"gte=0"`    // MB
	MaxBackups  int    `koanf:"max_backups" validate:"gte=0"` // files
	MaxAge      int    `koanf:"max_age" validate:"gte=0"`     // days
	Compress    bool   `koanf:"compress"`
	Development bool   `koanf:"development"`
}

// DefaultConfig logs info-level JSON to stderr.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "json",
		Output:     "stderr",
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}
}

// New builds a logger writing to the configured destination.
func New(cfg Config) (*zap.Logger, error) {
	w, err := writer(cfg)
	if err != nil {
		return nil, err
	}

	return NewWithWriter(cfg, w)
}

// NewWithWriter builds a logger writing to w, ignoring cfg.Output.
func NewWithWriter(cfg Config, w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: level %q: %w", cfg.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	if cfg.Development {
		encCfg = zap.NewDevelopmentEncoderConfig()
	}
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch cfg.Format {
	case "", "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console":
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	opts := []zap.Option{zap.AddCaller()}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}

	return zap.New(core, opts...), nil
}

func writer(cfg Config) (io.Writer, error) {
	switch cfg.Output {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("logging: file output needs a path")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}

		return &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}, nil
	default:
		return nil, fmt.Errorf("logging: unknown output %q", cfg.Output)
	}
}
