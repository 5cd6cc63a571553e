package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/toyball/audio"
	"github.com/lixenwraith/toyball/input"
	"github.com/lixenwraith/toyball/logger"
	"github.com/lixenwraith/toyball/parameter"
	"github.com/lixenwraith/toyball/toyball"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TOYBALL_"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the full application configuration
type Config struct {
	Tuning  toyball.Tuning `yaml:"tuning" envPrefix:"TUNING_"`
	Audio   audio.Config   `yaml:"audio" envPrefix:"AUDIO_"`
	Log     logger.Config  `yaml:"log" envPrefix:"LOG_"`
	Loop    LoopConfig     `yaml:"loop" envPrefix:"LOOP_"`
	Sandbox SandboxConfig  `yaml:"sandbox" envPrefix:"SANDBOX_"`
}

// LoopConfig controls the frame loop
type LoopConfig struct {
	Interval time.Duration `yaml:"interval" env:"INTERVAL"`
}

// SandboxConfig controls the terminal sandbox
type SandboxConfig struct {
	FloorY      float64           `yaml:"floor_y" env:"FLOOR_Y"`
	HandImpulse float64           `yaml:"hand_impulse" env:"HAND_IMPULSE"` // m/s per key press
	HandDrag    float64           `yaml:"hand_drag" env:"HAND_DRAG"`       // fraction of speed lost per second
	Scale       float64           `yaml:"scale" env:"SCALE"`               // columns per meter
	Keys        map[string]string `yaml:"keys"`                            // key to action name overrides
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Tuning: toyball.DefaultTuning(),
		Audio:  audio.DefaultConfig(),
		Log:    logger.DefaultConfig(),
		Loop: LoopConfig{
			Interval: parameter.FrameUpdateInterval,
		},
		Sandbox: SandboxConfig{
			FloorY:      parameter.SandboxFloorY,
			HandImpulse: parameter.SandboxHandImpulse,
			HandDrag:    parameter.SandboxHandDrag,
			Scale:       parameter.SandboxScale,
		},
	}
}

// Load layers defaults, the YAML file at path (skipped when empty) and
// TOYBALL_ environment variables, then validates the result
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := decodeYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeYAML overlays data onto cfg, rejecting unknown fields
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports every out-of-range field, joined
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	t := c.Tuning
	check(t.CatchRadius > 0, "tuning.catch_radius must be positive, got %v", t.CatchRadius)
	check(t.BallRadius > 0, "tuning.ball_radius must be positive, got %v", t.BallRadius)
	check(t.BallDamping >= 0, "tuning.ball_damping must not be negative, got %v", t.BallDamping)
	check(t.BallLifetime >= 0, "tuning.ball_lifetime must not be negative, got %v", t.BallLifetime)
	check(t.SoundVolume >= 0 && t.SoundVolume <= 1, "tuning.sound_volume must be in [0,1], got %v", t.SoundVolume)
	check(t.ThrowScale > 0 && !math.IsInf(t.ThrowScale, 0), "tuning.throw_scale must be positive, got %v", t.ThrowScale)
	check(t.ForwardOffset >= 0 && t.ForwardOffset <= parameter.MaxForwardOffset,
		"tuning.forward_offset must be in [0,%v], got %v", parameter.MaxForwardOffset, t.ForwardOffset)

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %w", ErrInvalid, err))
	}
	check(c.Log.MaxSizeMB >= 0, "log.max_size_mb must not be negative, got %d", c.Log.MaxSizeMB)
	check(c.Log.MaxBackups >= 0, "log.max_backups must not be negative, got %d", c.Log.MaxBackups)
	check(c.Log.Format == "json" || c.Log.Format == "console", "log.format must be json or console, got %q", c.Log.Format)

	check(c.Audio.MasterVolume >= 0 && c.Audio.MasterVolume <= 1,
		"audio.master_volume must be in [0,1], got %v", c.Audio.MasterVolume)
	check(c.Audio.SampleRate > 0, "audio.sample_rate must be positive, got %d", c.Audio.SampleRate)

	check(c.Loop.Interval > 0, "loop.interval must be positive, got %v", c.Loop.Interval)

	check(c.Sandbox.Scale > 0, "sandbox.scale must be positive, got %v", c.Sandbox.Scale)
	check(c.Sandbox.HandDrag >= 0, "sandbox.hand_drag must not be negative, got %v", c.Sandbox.HandDrag)
	if _, err := c.KeyMap(); err != nil {
		errs = append(errs, fmt.Errorf("%w: sandbox.keys: %w", ErrInvalid, err))
	}

	return errors.Join(errs...)
}

// KeyMap returns the default bindings with sandbox.keys applied
func (c *Config) KeyMap() (input.KeyMap, error) {
	return input.DefaultKeyMap().WithOverrides(c.Sandbox.Keys)
}
