package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the simulation tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps the delta handed to update callbacks after a stall
	// A debugger pause or a suspended terminal must not launch balls across the room
	MaxFrameDelta = 100 * time.Millisecond

	// LoopInboxSize is the capacity of the posted-function queue drained each tick
	LoopInboxSize = 256
)
