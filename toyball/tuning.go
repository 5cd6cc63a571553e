package toyball

import (
	"time"

	"github.com/lixenwraith/toyball/parameter"
	"github.com/lixenwraith/toyball/particle"
	"github.com/lixenwraith/toyball/vmath"
)

// Tuning holds the catch, hold and throw constants
type Tuning struct {
	CatchRadius   float64 `yaml:"catch_radius" env:"CATCH_RADIUS"`
	ForwardOffset float64 `yaml:"forward_offset" env:"FORWARD_OFFSET"` // along the palm normal
	ThrowScale    float64 `yaml:"throw_scale" env:"THROW_SCALE"`       // tip velocity multiplier
	ThrowGravity  float64 `yaml:"throw_gravity" env:"THROW_GRAVITY"`   // Y component after release
	SoundVolume   float64 `yaml:"sound_volume" env:"SOUND_VOLUME"`

	BallRadius   float64        `yaml:"ball_radius" env:"BALL_RADIUS"`
	BallDamping  float64        `yaml:"ball_damping" env:"BALL_DAMPING"`
	BallLifetime time.Duration  `yaml:"ball_lifetime" env:"BALL_LIFETIME"`
	BallColor    particle.Color `yaml:"ball_color" envPrefix:"BALL_COLOR_"`
}

// DefaultTuning returns the stock toy ball behavior
func DefaultTuning() Tuning {
	return Tuning{
		CatchRadius:   parameter.CatchRadius,
		ForwardOffset: parameter.BallForwardOffset,
		ThrowScale:    parameter.ThrownVelocityScaling,
		ThrowGravity:  parameter.ThrownGravityY,
		SoundVolume:   parameter.SoundVolume,
		BallRadius:    parameter.BallRadius,
		BallDamping:   parameter.BallDamping,
		BallLifetime:  parameter.BallLifetime,
		BallColor: particle.Color{
			R: parameter.BallColorR,
			G: parameter.BallColorG,
			B: parameter.BallColorB,
		},
	}
}

// ballProperties are the properties of a freshly spawned ball at pos
func (t Tuning) ballProperties(pos vmath.Vec3) particle.Properties {
	return particle.Properties{
		Position: pos,
		Color:    t.BallColor,
		Radius:   t.BallRadius,
		Damping:  t.BallDamping,
		Lifetime: t.BallLifetime,
		InHand:   true,
	}
}

func (t Tuning) throwGravity() vmath.Vec3 {
	return vmath.V3(0, t.ThrowGravity, 0)
}
