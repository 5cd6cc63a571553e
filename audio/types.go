package audio

import (
	"errors"
)

// SoundKind selects a built-in synthesized effect
type SoundKind int

const (
	SoundCatch SoundKind = iota // Ball caught or spawned into a hand
	SoundThrow                  // Ball released
	soundKindCount
)

func (k SoundKind) String() string {
	switch k {
	case SoundCatch:
		return "catch"
	case SoundThrow:
		return "throw"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrUnsupportedFormat = errors.New("unsupported sound format")
	ErrEmptySound        = errors.New("sound has no samples")
	ErrAlreadyRunning    = errors.New("audio engine already running")
)
