package input

import (
	"github.com/lixenwraith/toyball/parameter"
	"github.com/lixenwraith/toyball/vmath"
)

// Controller is the spatial controller capability polled once per frame
// Indices out of range read as released buttons and zero vectors
type Controller interface {
	NumberOfButtons() int
	NumberOfTriggers() int
	NumberOfSpatialControls() int

	IsButtonPressed(button int) bool

	SpatialPosition(control int) vmath.Vec3
	SpatialNormal(control int) vmath.Vec3
	SpatialVelocity(control int) vmath.Vec3
}

// Recognized reports whether the device has the Hydra shape:
// 12 buttons, 2 triggers, 2 spatial controls per trigger
func Recognized(c Controller) bool {
	if c == nil {
		return false
	}
	triggers := c.NumberOfTriggers()
	if triggers == 0 {
		return false
	}
	return c.NumberOfButtons() == parameter.HydraButtonCount &&
		triggers == parameter.HydraTriggerCount &&
		c.NumberOfSpatialControls() == triggers*parameter.HydraSpatialControlsPerTrigger
}

// Sample is one frame's read of a hand
type Sample struct {
	PalmPosition vmath.Vec3
	PalmNormal   vmath.Vec3
	TipPosition  vmath.Vec3
	TipVelocity  vmath.Vec3
	ButtonFwd    bool
	Button3      bool
}

// Grab is true while either grab button is held
func (s Sample) Grab() bool {
	return s.ButtonFwd || s.Button3
}

// Read polls the controls mapped to side
func Read(c Controller, side Side) Sample {
	m := MappingFor(side)
	return Sample{
		PalmPosition: c.SpatialPosition(m.Palm),
		PalmNormal:   c.SpatialNormal(m.Palm),
		TipPosition:  c.SpatialPosition(m.Tip),
		TipVelocity:  c.SpatialVelocity(m.Tip),
		ButtonFwd:    c.IsButtonPressed(m.ButtonFwd),
		Button3:      c.IsButtonPressed(m.Button3),
	}
}
