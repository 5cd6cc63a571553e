package toyball

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/toyball/audio"
	"github.com/lixenwraith/toyball/engine"
	"github.com/lixenwraith/toyball/input"
	"github.com/lixenwraith/toyball/particle"
	"github.com/lixenwraith/toyball/status"
	"github.com/lixenwraith/toyball/vmath"
)

// Particles is the particle capability the controller drives
type Particles interface {
	FindClosest(pos vmath.Vec3, radius float64) (particle.ID, bool)
	Add(props particle.Properties) particle.ID
	Edit(id particle.ID, edit particle.Edit) bool
}

// HandState tracks what one hand is holding
// Held implies Particle is non-zero; releasing clears both
type HandState struct {
	Held         bool
	Particle     particle.ID
	HoldPosition vmath.Vec3 // last position the ball was placed at
}

// Hand states published for display
const (
	stateEmpty   = "empty"
	stateCaught  = "caught"
	stateSpawned = "spawned"
	stateHolding = "holding"
	stateThrown  = "thrown"
	stateLost    = "lost"
)

// handStats are the per-side counters
type handStats struct {
	catches *atomic.Int64
	spawns  *atomic.Int64
	throws  *atomic.Int64
	lost    *atomic.Int64
	state   *status.AtomicString
}

// Deps are the collaborators of a HandBallController
type Deps struct {
	Controller input.Controller
	Particles  Particles
	Player     audio.Player
	Sounds     audio.Sounds

	Logger   *zap.Logger      // nil discards
	Registry *status.Registry // nil uses a private registry
}

// HandBallController turns a two-handed spatial controller into a
// catch, hold and throw game
// Not safe for concurrent use; call Update from the frame loop only
type HandBallController struct {
	ctrl      input.Controller
	particles Particles
	player    audio.Player
	sounds    audio.Sounds
	tuning    Tuning
	logger    *zap.Logger

	hands [len(input.Sides)]HandState
	stats [len(input.Sides)]handStats

	recognized  bool
	statSkipped *atomic.Int64
}

// New creates a controller with empty hands
func New(deps Deps, tuning Tuning) *HandBallController {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := deps.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}

	c := &HandBallController{
		ctrl:        deps.Controller,
		particles:   deps.Particles,
		player:      deps.Player,
		sounds:      deps.Sounds,
		tuning:      tuning,
		logger:      logger.Named("toyball"),
		recognized:  true,
		statSkipped: reg.Ints.Get("toyball.skipped_frames"),
	}

	for _, side := range input.Sides {
		prefix := "toyball." + side.String() + "."
		c.stats[side] = handStats{
			catches: reg.Ints.Get(prefix + "catches"),
			spawns:  reg.Ints.Get(prefix + "spawns"),
			throws:  reg.Ints.Get(prefix + "throws"),
			lost:    reg.Ints.Get(prefix + "lost"),
			state:   reg.Strings.Get(prefix + "state"),
		}
		c.stats[side].state.Store(stateEmpty)
	}
	return c
}

// Attach subscribes Update to a frame signal
func (c *HandBallController) Attach(update *engine.Signal) *engine.Connection {
	return update.Connect(c.Update)
}

// Hand returns a copy of the state of side
func (c *HandBallController) Hand(side input.Side) HandState {
	if !side.Valid() {
		return HandState{}
	}
	return c.hands[side]
}

// Update runs one frame for both hands
// An unrecognized device makes the whole frame a no-op
func (c *HandBallController) Update(dt time.Duration) {
	if !input.Recognized(c.ctrl) {
		if c.recognized {
			c.logger.Debug("no hydra connected?")
		}
		c.recognized = false
		c.statSkipped.Add(1)
		return
	}
	if !c.recognized {
		c.logger.Debug("hydra connected")
		c.recognized = true
	}

	for _, side := range input.Sides {
		c.checkSide(side, &c.hands[side])
	}
}

// checkSide runs the catch, spawn, hold and throw decision for one hand
func (c *HandBallController) checkSide(side input.Side, hand *HandState) {
	sample := input.Read(c.ctrl, side)
	grab := sample.Grab()
	holdPos := c.holdPosition(sample)
	stats := &c.stats[side]

	if !hand.Held && grab {
		if id, ok := c.particles.FindClosest(sample.PalmPosition, c.tuning.CatchRadius); ok && !id.IsZero() {
			caught := c.particles.Edit(id, particle.Edit{
				Position: &holdPos,
				Velocity: particle.Ref(vmath.Vec3{}),
				InHand:   particle.Ref(true),
			})
			if caught {
				c.logger.Debug("CAUGHT SOMETHING", zap.Stringer("hand", side), zap.Stringer("particle", id))
				c.hold(hand, id, holdPos)
				stats.catches.Add(1)
				stats.state.Store(stateCaught)
				c.play(c.sounds.Catch, holdPos)
				return
			}
			// Gone between query and edit, nothing to catch
			c.logger.Debug("catch target vanished", zap.Stringer("hand", side), zap.Stringer("particle", id))
		}
	}

	if sample.Button3 && !hand.Held {
		id := c.particles.Add(c.tuning.ballProperties(holdPos))
		c.logger.Debug("new ball", zap.Stringer("hand", side), zap.Stringer("particle", id))

		c.hold(hand, id, holdPos)
		stats.spawns.Add(1)
		stats.state.Store(stateSpawned)
		c.play(c.sounds.Catch, holdPos)
		return
	}

	if !hand.Held {
		return
	}

	if grab {
		c.logger.Debug("BALL IN HAND, grabbing, hold and move", zap.Stringer("hand", side))
		if !c.particles.Edit(hand.Particle, particle.Edit{Position: &holdPos}) {
			c.lose(side, hand)
			return
		}
		hand.HoldPosition = holdPos
		stats.state.Store(stateHolding)
		return
	}

	c.logger.Debug("BALL IN HAND, not grabbing, THROW", zap.Stringer("hand", side))
	thrown := c.particles.Edit(hand.Particle, particle.Edit{
		Velocity: particle.Ref(vmath.V3Scale(sample.TipVelocity, c.tuning.ThrowScale)),
		InHand:   particle.Ref(false),
		Gravity:  particle.Ref(c.tuning.throwGravity()),
	})
	if !thrown {
		c.lose(side, hand)
		return
	}

	releasePos := hand.HoldPosition
	*hand = HandState{}
	stats.throws.Add(1)
	stats.state.Store(stateThrown)
	c.play(c.sounds.Throw, releasePos)
}

// holdPosition is the fingertip pushed forward along the palm normal
func (c *HandBallController) holdPosition(s input.Sample) vmath.Vec3 {
	return vmath.V3AddScaled(s.TipPosition, s.PalmNormal, c.tuning.ForwardOffset)
}

func (c *HandBallController) hold(hand *HandState, id particle.ID, pos vmath.Vec3) {
	hand.Held = true
	hand.Particle = id
	hand.HoldPosition = pos
}

// lose drops a held ball the particle system no longer knows, such as one
// that outlived its lifetime in hand
func (c *HandBallController) lose(side input.Side, hand *HandState) {
	c.logger.Debug("held ball vanished", zap.Stringer("hand", side), zap.Stringer("particle", hand.Particle))
	*hand = HandState{}
	c.stats[side].lost.Add(1)
	c.stats[side].state.Store(stateLost)
}

func (c *HandBallController) play(snd *audio.Sound, pos vmath.Vec3) {
	if c.player == nil || snd == nil {
		return
	}
	c.player.PlaySound(snd, audio.Options{Position: pos, Volume: c.tuning.SoundVolume})
}
