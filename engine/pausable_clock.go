package engine

import (
	"sync"
	"time"
)

// PausableClock measures game time: real time minus time spent paused
type PausableClock struct {
	mu sync.RWMutex

	source TimeProvider
	start  time.Time

	paused      bool
	pauseStart  time.Time
	pausedTotal time.Duration
}

// NewPausableClock starts a clock on source, nil uses the system clock
func NewPausableClock(source TimeProvider) *PausableClock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		source: source,
		start:  source.Now(),
	}
}

// Elapsed returns game time since the clock started
// Frozen at the pause point while paused
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.pauseStart.Sub(pc.start) - pc.pausedTotal
	}
	return pc.source.Now().Sub(pc.start) - pc.pausedTotal
}

// Now returns game time as a timestamp on the clock's epoch
func (pc *PausableClock) Now() time.Time {
	return pc.start.Add(pc.Elapsed())
}

// Pause stops game time advancement, no-op if already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.source.Now()
}

// Resume continues game time advancement, no-op if running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return
	}
	pc.pausedTotal += pc.source.Now().Sub(pc.pauseStart)
	pc.paused = false
	pc.pauseStart = time.Time{}
}

// Toggle flips the pause state and returns true if now paused
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including a pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.pausedTotal
	if pc.paused {
		total += pc.source.Now().Sub(pc.pauseStart)
	}
	return total
}
