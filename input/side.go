package input

import "github.com/lixenwraith/toyball/parameter"

// Side selects a hand
type Side int

const (
	Left Side = iota
	Right
	sideCount
)

// Sides lists both hands in update order
var Sides = [sideCount]Side{Left, Right}

func (s Side) String() string {
	switch s {
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether s names a hand
func (s Side) Valid() bool {
	return s >= Left && s < sideCount
}

// Mapping is the per-side control index table
type Mapping struct {
	Palm      int // spatial control: palm position and normal
	Tip       int // spatial control: fingertip position and velocity
	ButtonFwd int // forward (trigger-side) button
	Button3   int // side button, also spawns a ball
}

var mappings = [sideCount]Mapping{
	Left: {
		Palm:      parameter.LeftPalm,
		Tip:       parameter.LeftTip,
		ButtonFwd: parameter.LeftButtonFwd,
		Button3:   parameter.LeftButton3,
	},
	Right: {
		Palm:      parameter.RightPalm,
		Tip:       parameter.RightTip,
		ButtonFwd: parameter.RightButtonFwd,
		Button3:   parameter.RightButton3,
	},
}

// MappingFor returns the control indices of side
// Panics on an invalid side
func MappingFor(side Side) Mapping {
	return mappings[side]
}
