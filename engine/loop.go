package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/toyball/parameter"
	"github.com/lixenwraith/toyball/status"
)

// System is stepped once per frame after update callbacks
type System interface {
	Update(dt time.Duration)
}

// Loop drives the simulation on a fixed tick
// All frame work, including posted functions, runs on the goroutine calling Run
type Loop struct {
	interval time.Duration
	maxDelta time.Duration
	clock    *PausableClock

	update  Signal
	systems []System
	inbox   chan func()

	lastElapsed time.Duration
	frames      atomic.Uint64

	statFrames  *atomic.Int64
	statDelta   *status.AtomicFloat
	statDropped *atomic.Int64
	statPaused  *atomic.Bool
}

// NewLoop creates a loop ticking every interval on clock
func NewLoop(interval time.Duration, clock *PausableClock, reg *status.Registry) *Loop {
	if interval <= 0 {
		interval = parameter.FrameUpdateInterval
	}
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	return &Loop{
		interval:    interval,
		maxDelta:    parameter.MaxFrameDelta,
		clock:       clock,
		inbox:       make(chan func(), parameter.LoopInboxSize),
		lastElapsed: clock.Elapsed(),
		statFrames:  reg.Ints.Get("engine.frames"),
		statDelta:   reg.Floats.Get("engine.dt_ms"),
		statDropped: reg.Ints.Get("engine.inbox_dropped"),
		statPaused:  reg.Bools.Get("engine.paused"),
	}
}

// Update is the per-frame script signal
func (l *Loop) Update() *Signal {
	return &l.update
}

// AddSystem appends a system stepped after the update signal, must be called before Run
func (l *Loop) AddSystem(s System) {
	l.systems = append(l.systems, s)
}

// Clock returns the loop's game clock
func (l *Loop) Clock() *PausableClock {
	return l.clock
}

// Interval returns the tick interval
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Frames returns the number of frames emitted
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// Post queues fn to run at the start of the next frame
// Safe from any goroutine; returns false when the inbox is full
func (l *Loop) Post(fn func()) bool {
	select {
	case l.inbox <- fn:
		return true
	default:
		l.statDropped.Add(1)
		return false
	}
}

// Tick measures game time since the previous tick and steps one frame
func (l *Loop) Tick() {
	elapsed := l.clock.Elapsed()
	dt := elapsed - l.lastElapsed
	l.lastElapsed = elapsed

	if dt < 0 {
		dt = 0
	}
	if dt > l.maxDelta {
		dt = l.maxDelta
	}
	l.Step(dt)
}

// Step runs one frame with an explicit delta
// Posted functions always run; callbacks and systems are skipped while paused
func (l *Loop) Step(dt time.Duration) {
	l.drain()

	paused := l.clock.IsPaused()
	l.statPaused.Store(paused)
	if paused {
		return
	}

	l.update.Emit(dt)
	for _, s := range l.systems {
		s.Update(dt)
	}

	frames := l.frames.Add(1)
	l.statFrames.Store(int64(frames))
	l.statDelta.Set(float64(dt) / float64(time.Millisecond))
}

// Run ticks until ctx is done
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	// Discard time spent between construction and Run
	l.lastElapsed = l.clock.Elapsed()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.Tick()
		}
	}
}

// drain runs what was queued when the frame started; functions posted by
// posted functions wait for the next frame
func (l *Loop) drain() {
	for n := len(l.inbox); n > 0; n-- {
		select {
		case fn := <-l.inbox:
			fn()
		default:
			return
		}
	}
}
