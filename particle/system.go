package particle

import (
	"math"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/lixenwraith/toyball/parameter"
	"github.com/lixenwraith/toyball/vmath"
)

// System owns all particles and steps their physics
// Single-threaded: call from the loop goroutine only
type System struct {
	world  *ecs.World
	states *ecs.Map1[State]
	filter *ecs.Filter1[State]

	floor    float64
	hasFloor bool

	count   int
	expired []ecs.Entity
}

// Option configures a System
type Option func(*System)

// WithFloor adds a horizontal plane at height y that particles bounce off
func WithFloor(y float64) Option {
	return func(s *System) {
		s.floor = y
		s.hasFloor = true
	}
}

// NewSystem creates an empty particle system
func NewSystem(opts ...Option) *System {
	world := ecs.NewWorld(parameter.ParticleInitialCapacity)
	s := &System{
		world: &world,
	}
	s.states = ecs.NewMap1[State](s.world)
	s.filter = ecs.NewFilter1[State](s.world)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add creates a particle and returns its handle
func (s *System) Add(props Properties) ID {
	e := s.states.NewEntity(&State{Properties: props})
	s.count++
	return ID{entity: e}
}

// Edit applies a partial update, false if id is unknown
func (s *System) Edit(id ID, edit Edit) bool {
	st := s.lookup(id)
	if st == nil {
		return false
	}
	edit.apply(&st.Properties)
	return true
}

// Get returns a copy of the particle state
func (s *System) Get(id ID) (State, bool) {
	st := s.lookup(id)
	if st == nil {
		return State{}, false
	}
	return *st, true
}

// Remove deletes a particle, false if id is unknown
func (s *System) Remove(id ID) bool {
	if s.lookup(id) == nil {
		return false
	}
	s.world.RemoveEntity(id.entity)
	s.count--
	return true
}

// Len returns the number of live particles
func (s *System) Len() int {
	return s.count
}

// FindClosest returns the nearest particle not in hand whose center lies
// within radius of pos
func (s *System) FindClosest(pos vmath.Vec3, radius float64) (ID, bool) {
	if radius < 0 {
		return ID{}, false
	}
	bestDistSq := radius * radius
	var best ecs.Entity
	found := false

	query := s.filter.Query()
	for query.Next() {
		st := query.Get()
		if st.InHand {
			continue
		}
		d := vmath.V3DistSq(st.Position, pos)
		if d > bestDistSq || (found && d == bestDistSq) {
			continue
		}
		bestDistSq = d
		best = query.Entity()
		found = true
	}

	if !found {
		return ID{}, false
	}
	return ID{entity: best}, true
}

// Each calls fn for every live particle
// fn must not add, edit or remove particles
func (s *System) Each(fn func(ID, State)) {
	query := s.filter.Query()
	for query.Next() {
		fn(ID{entity: query.Entity()}, *query.Get())
	}
}

// Update advances the simulation by dt and removes expired particles
func (s *System) Update(dt time.Duration) {
	secs := dt.Seconds()
	if secs <= 0 {
		return
	}

	s.expired = s.expired[:0]

	query := s.filter.Query()
	for query.Next() {
		st := query.Get()

		if !st.InHand {
			s.integrate(&st.Properties, secs)
		}

		st.Age += dt
		if st.Lifetime > 0 && st.Age >= st.Lifetime {
			s.expired = append(s.expired, query.Entity())
		}
	}

	// World is locked during iteration
	for _, e := range s.expired {
		s.world.RemoveEntity(e)
		s.count--
	}
}

// integrate applies gravity, damping and motion for one step
func (s *System) integrate(p *Properties, secs float64) {
	p.Velocity = vmath.V3AddScaled(p.Velocity, p.Gravity, secs)

	keep := 1 - p.Damping*secs
	if keep < 0 {
		keep = 0
	}
	p.Velocity = vmath.V3Scale(p.Velocity, keep)

	p.Position = vmath.V3AddScaled(p.Position, p.Velocity, secs)

	if !s.hasFloor {
		return
	}
	bottom := s.floor + p.Radius
	if p.Position.Y >= bottom {
		return
	}
	p.Position.Y = bottom
	if p.Velocity.Y < 0 {
		p.Velocity.Y = -p.Velocity.Y * parameter.ParticleFloorRestitution
	}
	if math.Abs(p.Velocity.Y) < parameter.ParticleRestSpeed {
		p.Velocity.Y = 0
	}
}

func (s *System) lookup(id ID) *State {
	if id.IsZero() || !s.world.Alive(id.entity) {
		return nil
	}
	return s.states.Get(id.entity)
}
