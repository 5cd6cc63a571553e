package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// RawSampleRate is the rate of headerless .raw assets (16-bit LE mono)
	RawSampleRate = 24000
)

// Spatialization
const (
	// AudioReferenceDistance is the distance at which a sound plays at full volume
	AudioReferenceDistance = 1.0

	// AudioRolloff controls inverse distance attenuation beyond the reference distance
	AudioRolloff = 1.0

	// AudioPanWidth is the lateral offset (m) that maps to a hard left/right pan
	AudioPanWidth = 2.0
)

// Catch Sound
const (
	CatchSoundDuration = 120 * time.Millisecond
	CatchSoundAttack   = 3 * time.Millisecond
	CatchSoundRelease  = 90 * time.Millisecond
	CatchSoundFreq     = 660.0
)

// Throw Sound
const (
	ThrowSoundDuration = 250 * time.Millisecond
	ThrowSoundAttack   = 40 * time.Millisecond
	ThrowSoundRelease  = 180 * time.Millisecond
)
