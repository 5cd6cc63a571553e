package audio

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/toyball/parameter"
	"github.com/lixenwraith/toyball/status"
)

// Player plays a positional sound
type Player interface {
	PlaySound(snd *Sound, opts Options) bool
}

// Output is the device sink the engine mixes into
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Clear()
}

// speakerOutput mixes into the system speaker
type speakerOutput struct {
	mixer beep.Mixer
}

func (o *speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	if err := speaker.Init(rate, bufferSize); err != nil {
		return err
	}
	speaker.Play(&o.mixer)
	return nil
}

func (o *speakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// Clear drops active streams; beep has no speaker shutdown that survives re-Init
func (o *speakerOutput) Clear() {
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
}

// Engine plays positional one-shot sounds through an Output
// Falls back to silent mode when the device is unavailable
type Engine struct {
	out    Output
	rate   beep.SampleRate
	logger *zap.Logger

	mu       sync.RWMutex // Protects master and listener
	master   float64
	listener Listener

	running    atomic.Bool
	muted      atomic.Bool
	silentMode atomic.Bool

	statPlayed  *atomic.Int64
	statDropped *atomic.Int64
	statSilent  *atomic.Bool
	statMuted   *atomic.Bool
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithOutput replaces the speaker sink
func WithOutput(out Output) EngineOption {
	return func(e *Engine) {
		e.out = out
	}
}

// WithLogger sets the engine logger
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates a stopped engine; disabled configs start muted
func NewEngine(cfg Config, reg *status.Registry, opts ...EngineOption) *Engine {
	if reg == nil {
		reg = status.NewRegistry()
	}
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = parameter.AudioSampleRate
	}

	e := &Engine{
		rate:        beep.SampleRate(rate),
		logger:      zap.NewNop(),
		master:      clampVolume(cfg.MasterVolume),
		listener:    DefaultListener(),
		statPlayed:  reg.Ints.Get("audio.played"),
		statDropped: reg.Ints.Get("audio.dropped"),
		statSilent:  reg.Bools.Get("audio.silent"),
		statMuted:   reg.Bools.Get("audio.muted"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.out == nil {
		e.out = &speakerOutput{}
	}

	e.muted.Store(!cfg.Enabled)
	e.statMuted.Store(!cfg.Enabled)
	return e
}

// SampleRate returns the output rate sounds should be loaded at
func (e *Engine) SampleRate() beep.SampleRate {
	return e.rate
}

// Start opens the output device
// Device failure switches to silent mode and is not an error
func (e *Engine) Start() error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	if err := e.out.Init(e.rate, e.rate.N(parameter.AudioBufferDuration)); err != nil {
		e.logger.Warn("audio device unavailable, running silent", zap.Error(err))
		e.silentMode.Store(true)
		e.statSilent.Store(true)
		return nil
	}

	e.logger.Info("audio started", zap.Int("sample_rate", int(e.rate)))
	return nil
}

// Stop silences active sounds; safe to call more than once
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	if !e.silentMode.Load() {
		e.out.Clear()
	}
}

// PlaySound mixes snd at opts relative to the listener
// Returns false when nothing was queued
func (e *Engine) PlaySound(snd *Sound, opts Options) bool {
	if snd == nil || !e.IsEnabled() {
		e.statDropped.Add(1)
		return false
	}

	e.mu.RLock()
	master := e.master
	listener := e.listener
	e.mu.RUnlock()

	gain, pan := Spatialize(listener, opts)
	gain *= master
	if gain <= 0 {
		e.statDropped.Add(1)
		return false
	}

	var s beep.Streamer = snd.Streamer()
	if snd.SampleRate() != e.rate {
		s = beep.Resample(resampleQuality, snd.SampleRate(), e.rate, s)
	}
	e.out.Play(&effects.Pan{Streamer: newVolume(s, gain), Pan: pan})

	e.statPlayed.Add(1)
	return true
}

// SetListener moves the ear used for spatialization
func (e *Engine) SetListener(l Listener) {
	e.mu.Lock()
	e.listener = l
	e.mu.Unlock()
}

// SetVolume updates master volume (0.0-1.0)
func (e *Engine) SetVolume(vol float64) {
	e.mu.Lock()
	e.master = clampVolume(vol)
	e.mu.Unlock()
}

// Volume returns master volume
func (e *Engine) Volume() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.master
}

// ToggleMute toggles mute state, returns true if now audible
func (e *Engine) ToggleMute() bool {
	muted := !e.muted.Load()
	e.muted.Store(muted)
	e.statMuted.Store(muted)
	return !muted
}

// IsMuted returns current mute state
func (e *Engine) IsMuted() bool {
	return e.muted.Load()
}

// IsRunning returns true after Start, including silent mode
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// IsSilent reports whether the device failed to open
func (e *Engine) IsSilent() bool {
	return e.silentMode.Load()
}

// IsEnabled returns true if running, unmuted and attached to a device
func (e *Engine) IsEnabled() bool {
	return e.running.Load() && !e.muted.Load() && !e.silentMode.Load()
}

// Stats returns played and dropped counts
func (e *Engine) Stats() (played, dropped int64) {
	return e.statPlayed.Load(), e.statDropped.Load()
}

func clampVolume(vol float64) float64 {
	return min(max(vol, 0), 1)
}

// Sounds holds the catch and throw cues
type Sounds struct {
	Catch *Sound
	Throw *Sound
}

// SynthSounds renders both built-in cues at rate
func SynthSounds(rate beep.SampleRate) Sounds {
	return Sounds{
		Catch: Synth(SoundCatch, rate),
		Throw: Synth(SoundThrow, rate),
	}
}

// LoadSounds loads configured assets at rate, synthesizing cues with no path
// On error the returned set still holds synthesized fallbacks
func LoadSounds(cfg Config, rate beep.SampleRate) (Sounds, error) {
	sounds := SynthSounds(rate)

	if cfg.CatchSound != "" {
		snd, err := LoadSound(cfg.CatchSound, rate)
		if err != nil {
			return sounds, fmt.Errorf("load %s sound: %w", SoundCatch, err)
		}
		sounds.Catch = snd
	}
	if cfg.ThrowSound != "" {
		snd, err := LoadSound(cfg.ThrowSound, rate)
		if err != nil {
			return sounds, fmt.Errorf("load %s sound: %w", SoundThrow, err)
		}
		sounds.Throw = snd
	}
	return sounds, nil
}

// newVolume wraps s in a linear gain
// log2(0) is -Inf so zero and below is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
