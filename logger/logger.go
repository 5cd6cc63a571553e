package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config defines logging configuration
type Config struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Format      string `yaml:"format" env:"FORMAT"` // json or console
	File        string `yaml:"file" env:"FILE"`     // empty discards all output
	Development bool   `yaml:"development" env:"DEVELOPMENT"`

	MaxSizeMB  int `yaml:"max_size_mb" env:"MAX_SIZE_MB"` // rotate once the file would exceed this
	MaxBackups int `yaml:"max_backups" env:"MAX_BACKUPS"` // 0 keeps every rotated file
	MaxAgeDays int `yaml:"max_age_days" env:"MAX_AGE_DAYS"`
}

// DefaultConfig discards logs; the sandbox owns the terminal
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// New builds a zap logger writing to cfg.File through a rotating writer
// Returns a no-op logger when no file is configured
func New(cfg Config) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	if cfg.Development {
		encCfg = zap.NewDevelopmentEncoderConfig()
	}
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch cfg.Format {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console", "":
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("log format %q: want json or console", cfg.Format)
	}

	sink := zapcore.AddSync(newWriter(cfg))

	// Frame-rate debug traces must not be sampled away, so no sampler
	core := zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(level))

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(sink),
	}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}
	return zap.New(core, opts...), nil
}

// newWriter is the rotating file sink for cfg
func newWriter(cfg Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		LocalTime:  true,
	}
}
