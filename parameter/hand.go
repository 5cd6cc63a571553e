package parameter

import "time"

// Expected device shape (Razer Hydra)
const (
	HydraButtonCount               = 12
	HydraTriggerCount              = 2
	HydraSpatialControlsPerTrigger = 2
	HydraSpatialControlCount       = HydraTriggerCount * HydraSpatialControlsPerTrigger
)

// Per-side control indices
const (
	LeftPalm       = 0
	LeftTip        = 1
	LeftButtonFwd  = 5
	LeftButton3    = 3
	RightPalm      = 2
	RightTip       = 3
	RightButtonFwd = 11
	RightButton3   = 9
)

// Catch / hold / throw tuning
const (
	// CatchRadius is the palm distance within which a free ball is caught
	CatchRadius = 0.25

	// BallForwardOffset puts the ball a bit forward of the fingers along the palm normal
	BallForwardOffset = 0.08

	// MaxForwardOffset keeps a configured hold position within arm's reach of the fingertip
	MaxForwardOffset = 0.5

	// ThrownVelocityScaling multiplies fingertip velocity on release
	ThrownVelocityScaling = 1.5

	// ThrownGravityY is the downward gravity applied to a released ball
	ThrownGravityY = -2.0

	// SoundVolume for catch and throw cues
	SoundVolume = 1.0
)

// Spawned ball properties
const (
	BallRadius   = 0.05
	BallDamping  = 0.999
	BallLifetime = 10 * time.Second

	BallColorR = 255
	BallColorG = 0
	BallColorB = 0
)
