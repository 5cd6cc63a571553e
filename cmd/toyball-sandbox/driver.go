package main

import (
	"time"

	"github.com/lixenwraith/toyball/input"
	"github.com/lixenwraith/toyball/parameter"
	"github.com/lixenwraith/toyball/vmath"
)

// handDriver moves the simulated Hydra from keyboard impulses
// Hands coast and slow down under drag so a release while moving throws
type handDriver struct {
	hydra    *input.Hydra
	impulse  float64
	drag     float64
	velocity [len(input.Sides)]vmath.Vec3
	grab     [len(input.Sides)]bool
	spawn    [len(input.Sides)]bool
}

func newHandDriver(hydra *input.Hydra, impulse, drag float64) *handDriver {
	d := &handDriver{
		hydra:   hydra,
		impulse: impulse,
		drag:    drag,
	}
	d.resetHands()
	return d
}

// resetHands puts both palms at chest height facing forward
func (d *handDriver) resetHands() {
	forward := vmath.V3(0, 0, -1)
	for _, side := range input.Sides {
		x := parameter.SandboxHandSpread
		if side == input.Left {
			x = -x
		}
		palm := vmath.V3(x, parameter.SandboxHandHeight, 0)
		tip := vmath.V3AddScaled(palm, forward, 0.1)
		d.hydra.PlaceHand(side, palm, tip, forward)
		d.velocity[side] = vmath.Vec3{}
	}
	d.hydra.Advance(0)
}

// Apply handles a hand key, returns false for non-hand entries
func (d *handDriver) Apply(e input.KeyEntry) bool {
	if !e.IsHand() || !e.Side.Valid() {
		return false
	}

	switch e.Action {
	case input.ActionToggleGrab:
		d.grab[e.Side] = !d.grab[e.Side]
	case input.ActionToggleSpawn:
		d.spawn[e.Side] = !d.spawn[e.Side]
	default:
		d.velocity[e.Side] = vmath.V3AddScaled(d.velocity[e.Side], e.Direction(), d.impulse)
	}
	d.hydra.Press(e.Side, d.grab[e.Side], d.spawn[e.Side])
	return true
}

// Pressed reports the toggled grab and spawn buttons of side
func (d *handDriver) Pressed(side input.Side) (grab, spawn bool) {
	return d.grab[side], d.spawn[side]
}

// Update moves the hands and lets the Hydra derive fingertip velocity
func (d *handDriver) Update(dt time.Duration) {
	secs := dt.Seconds()
	keep := max(1-d.drag*secs, 0)

	for _, side := range input.Sides {
		v := d.velocity[side]
		if !v.IsZero() {
			d.hydra.MoveHand(side, vmath.V3Scale(v, secs))
		}
		d.velocity[side] = vmath.V3Scale(v, keep)
	}
	d.hydra.Advance(dt)
}
