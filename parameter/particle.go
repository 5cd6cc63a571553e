package parameter

// Particle simulation
const (
	// ParticleFloorRestitution is the velocity fraction kept on floor bounce
	ParticleFloorRestitution = 0.6

	// ParticleRestSpeed below which a bouncing particle settles on the floor (m/s)
	ParticleRestSpeed = 0.05

	// ParticleInitialCapacity pre-sizes the ECS world
	ParticleInitialCapacity = 256
)
