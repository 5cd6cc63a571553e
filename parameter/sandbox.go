package parameter

// Sandbox view and hand driver
const (
	// SandboxFloorY is the floor height balls bounce on
	SandboxFloorY = 0.0

	// SandboxHandImpulse is the hand speed (m/s) added by one move key press
	SandboxHandImpulse = 1.5

	// SandboxHandDrag is the fraction of hand speed lost per second
	SandboxHandDrag = 4.0

	// SandboxScale is terminal columns per meter; rows use half for cell aspect
	SandboxScale = 20.0

	// SandboxHandHeight is the starting palm height above the floor
	SandboxHandHeight = 1.2

	// SandboxHandSpread is the starting lateral distance of each palm from center
	SandboxHandSpread = 0.3
)
