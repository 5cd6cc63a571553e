package particle

import (
	"fmt"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/lixenwraith/toyball/vmath"
)

// ID is an opaque handle to a particle owned by a System
// The zero value refers to no particle; a handle to a removed particle stays
// invalid even if its slot is recycled
type ID struct {
	entity ecs.Entity
}

// IsZero reports whether id is the empty handle
func (id ID) IsZero() bool {
	return id.entity.IsZero()
}

func (id ID) String() string {
	if id.IsZero() {
		return "particle#none"
	}
	return fmt.Sprintf("particle#%d", id.entity.ID())
}

// Color is an 8-bit RGB color
type Color struct {
	R uint8 `yaml:"r" env:"R"`
	G uint8 `yaml:"g" env:"G"`
	B uint8 `yaml:"b" env:"B"`
}

// Properties are the user-settable attributes of a particle
type Properties struct {
	Position vmath.Vec3
	Velocity vmath.Vec3 // m/s
	Gravity  vmath.Vec3 // m/s²
	Color    Color
	Radius   float64
	Damping  float64       // velocity fraction lost per second
	Lifetime time.Duration // 0 = lives until removed
	InHand   bool          // held particles are not simulated and cannot be caught
}

// State is the ECS component: properties plus simulation bookkeeping
type State struct {
	Properties
	Age time.Duration
}

// Edit is a partial property update, nil fields are left untouched
type Edit struct {
	Position *vmath.Vec3
	Velocity *vmath.Vec3
	Gravity  *vmath.Vec3
	Color    *Color
	Radius   *float64
	Damping  *float64
	Lifetime *time.Duration
	InHand   *bool
}

// Ref returns a pointer to v for building an Edit inline
func Ref[T any](v T) *T {
	return &v
}

func (e *Edit) apply(p *Properties) {
	if e.Position != nil {
		p.Position = *e.Position
	}
	if e.Velocity != nil {
		p.Velocity = *e.Velocity
	}
	if e.Gravity != nil {
		p.Gravity = *e.Gravity
	}
	if e.Color != nil {
		p.Color = *e.Color
	}
	if e.Radius != nil {
		p.Radius = *e.Radius
	}
	if e.Damping != nil {
		p.Damping = *e.Damping
	}
	if e.Lifetime != nil {
		p.Lifetime = *e.Lifetime
	}
	if e.InHand != nil {
		p.InHand = *e.InHand
	}
}
