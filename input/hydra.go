package input

import (
	"time"

	"github.com/lixenwraith/toyball/parameter"
	"github.com/lixenwraith/toyball/vmath"
)

// Hydra is an in-memory Hydra-shaped device
// Drives the sandbox from the keyboard and stands in for hardware in tests
// Not safe for concurrent use; mutate it on the loop goroutine
type Hydra struct {
	connected bool

	buttons   [parameter.HydraButtonCount]bool
	positions [parameter.HydraSpatialControlCount]vmath.Vec3
	normals   [parameter.HydraSpatialControlCount]vmath.Vec3
	velocity  [parameter.HydraSpatialControlCount]vmath.Vec3

	// Velocity derivation from successive positions
	prev     [parameter.HydraSpatialControlCount]vmath.Vec3
	explicit [parameter.HydraSpatialControlCount]bool
}

// NewHydra returns a connected device with palms facing forward (-Z)
func NewHydra() *Hydra {
	h := &Hydra{connected: true}
	for i := range h.normals {
		h.normals[i] = vmath.V3(0, 0, -1)
	}
	return h
}

// SetConnected toggles whether the device reports its shape
func (h *Hydra) SetConnected(connected bool) {
	h.connected = connected
}

func (h *Hydra) NumberOfButtons() int {
	if !h.connected {
		return 0
	}
	return parameter.HydraButtonCount
}

func (h *Hydra) NumberOfTriggers() int {
	if !h.connected {
		return 0
	}
	return parameter.HydraTriggerCount
}

func (h *Hydra) NumberOfSpatialControls() int {
	if !h.connected {
		return 0
	}
	return parameter.HydraSpatialControlCount
}

func (h *Hydra) IsButtonPressed(button int) bool {
	if button < 0 || button >= len(h.buttons) {
		return false
	}
	return h.buttons[button]
}

func (h *Hydra) SpatialPosition(control int) vmath.Vec3 {
	if !validControl(control) {
		return vmath.Vec3{}
	}
	return h.positions[control]
}

func (h *Hydra) SpatialNormal(control int) vmath.Vec3 {
	if !validControl(control) {
		return vmath.Vec3{}
	}
	return h.normals[control]
}

func (h *Hydra) SpatialVelocity(control int) vmath.Vec3 {
	if !validControl(control) {
		return vmath.Vec3{}
	}
	return h.velocity[control]
}

// SetButton sets a raw button index
func (h *Hydra) SetButton(button int, pressed bool) {
	if button < 0 || button >= len(h.buttons) {
		return
	}
	h.buttons[button] = pressed
}

// SetPosition moves one spatial control without touching its velocity
func (h *Hydra) SetPosition(control int, pos vmath.Vec3) {
	if !validControl(control) {
		return
	}
	h.positions[control] = pos
}

// SetNormal sets the facing direction of one spatial control
func (h *Hydra) SetNormal(control int, normal vmath.Vec3) {
	if !validControl(control) {
		return
	}
	h.normals[control] = normal
}

// SetVelocity pins the velocity of a control until the next Advance
func (h *Hydra) SetVelocity(control int, vel vmath.Vec3) {
	if !validControl(control) {
		return
	}
	h.velocity[control] = vel
	h.explicit[control] = true
}

// Press sets both grab buttons of side
func (h *Hydra) Press(side Side, fwd, button3 bool) {
	m := MappingFor(side)
	h.buttons[m.ButtonFwd] = fwd
	h.buttons[m.Button3] = button3
}

// PlaceHand positions palm and fingertip of side and sets the palm normal
func (h *Hydra) PlaceHand(side Side, palm, tip, normal vmath.Vec3) {
	m := MappingFor(side)
	h.positions[m.Palm] = palm
	h.positions[m.Tip] = tip
	h.normals[m.Palm] = normal
}

// MoveHand translates palm and fingertip of side by delta
func (h *Hydra) MoveHand(side Side, delta vmath.Vec3) {
	m := MappingFor(side)
	h.positions[m.Palm] = vmath.V3Add(h.positions[m.Palm], delta)
	h.positions[m.Tip] = vmath.V3Add(h.positions[m.Tip], delta)
}

// Advance derives velocities from movement since the previous Advance
// Controls with an explicit SetVelocity keep it for this frame only
func (h *Hydra) Advance(dt time.Duration) {
	secs := dt.Seconds()
	for i := range h.positions {
		switch {
		case h.explicit[i]:
			h.explicit[i] = false
		case secs > 0:
			h.velocity[i] = vmath.V3Scale(vmath.V3Sub(h.positions[i], h.prev[i]), 1/secs)
		default:
			h.velocity[i] = vmath.Vec3{}
		}
		h.prev[i] = h.positions[i]
	}
}

func validControl(control int) bool {
	return control >= 0 && control < parameter.HydraSpatialControlCount
}
