package audio

import (
	"github.com/lixenwraith/toyball/parameter"
	"github.com/lixenwraith/toyball/vmath"
)

// Options describe a single positional playback
type Options struct {
	Position vmath.Vec3
	Volume   float64 // 0.0-1.0 before distance attenuation
}

// Listener is the ear position and its right-hand axis
type Listener struct {
	Position vmath.Vec3
	Right    vmath.Vec3
}

// DefaultListener sits at the origin facing -Z
func DefaultListener() Listener {
	return Listener{Right: vmath.V3(1, 0, 0)}
}

// Spatialize maps a source position and base volume to gain and stereo pan
// Gain is full inside the reference distance and falls off inversely beyond it
// Pan is -1 (left) to 1 (right)
func Spatialize(l Listener, opts Options) (gain, pan float64) {
	if opts.Volume <= 0 {
		return 0, 0
	}

	offset := vmath.V3Sub(opts.Position, l.Position)

	ref := parameter.AudioReferenceDistance
	dist := max(vmath.V3Mag(offset), ref)
	gain = opts.Volume * ref / (ref + parameter.AudioRolloff*(dist-ref))

	right := vmath.V3Normalize(l.Right)
	if right.IsZero() {
		return gain, 0
	}
	pan = vmath.V3Dot(offset, right) / parameter.AudioPanWidth
	return gain, min(max(pan, -1), 1)
}
