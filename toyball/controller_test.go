package toyball

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/toyball/audio"
	"github.com/lixenwraith/toyball/engine"
	"github.com/lixenwraith/toyball/input"
	"github.com/lixenwraith/toyball/parameter"
	"github.com/lixenwraith/toyball/particle"
	"github.com/lixenwraith/toyball/status"
	"github.com/lixenwraith/toyball/vmath"
)

const frame = 16 * time.Millisecond

// recordingParticles wraps a real system and counts calls
type recordingParticles struct {
	*particle.System
	adds  []particle.Properties
	edits []particle.Edit
	finds int
}

func (r *recordingParticles) FindClosest(pos vmath.Vec3, radius float64) (particle.ID, bool) {
	r.finds++
	return r.System.FindClosest(pos, radius)
}

func (r *recordingParticles) Add(props particle.Properties) particle.ID {
	r.adds = append(r.adds, props)
	return r.System.Add(props)
}

func (r *recordingParticles) Edit(id particle.ID, edit particle.Edit) bool {
	r.edits = append(r.edits, edit)
	return r.System.Edit(id, edit)
}

func (r *recordingParticles) calls() int {
	return len(r.adds) + len(r.edits) + r.finds
}

type playback struct {
	sound *audio.Sound
	opts  audio.Options
}

type recordingPlayer struct {
	plays []playback
}

func (p *recordingPlayer) PlaySound(snd *audio.Sound, opts audio.Options) bool {
	p.plays = append(p.plays, playback{snd, opts})
	return true
}

type fixture struct {
	hydra     *input.Hydra
	particles *recordingParticles
	player    *recordingPlayer
	sounds    audio.Sounds
	reg       *status.Registry
	ctrl      *HandBallController
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		hydra:     input.NewHydra(),
		particles: &recordingParticles{System: particle.NewSystem()},
		player:    &recordingPlayer{},
		sounds:    audio.SynthSounds(8000),
		reg:       status.NewRegistry(),
	}
	f.ctrl = New(Deps{
		Controller: f.hydra,
		Particles:  f.particles,
		Player:     f.player,
		Sounds:     f.sounds,
		Registry:   f.reg,
	}, DefaultTuning())

	// Palms facing forward, hands apart
	f.hydra.PlaceHand(input.Left, vmath.V3(-0.3, 1, 0), vmath.V3(-0.3, 1, -0.1), vmath.V3(0, 0, -1))
	f.hydra.PlaceHand(input.Right, vmath.V3(0.3, 1, 0), vmath.V3(0.3, 1, -0.1), vmath.V3(0, 0, -1))
	return f
}

func (f *fixture) reset() {
	f.particles.adds = nil
	f.particles.edits = nil
	f.particles.finds = 0
	f.player.plays = nil
}

func (f *fixture) step() {
	f.hydra.Advance(frame)
	f.ctrl.Update(frame)
}

func (f *fixture) count(key string) int64 {
	return f.reg.Ints.Get(key).Load()
}

func holdOf(tip, normal vmath.Vec3) vmath.Vec3 {
	return vmath.V3AddScaled(tip, normal, 0.08)
}

func TestUnrecognizedDeviceIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.particles.System.Add(particle.Properties{Position: vmath.V3(-0.3, 1, 0)})
	f.hydra.Press(input.Left, true, true)
	f.hydra.SetConnected(false)

	for i := 0; i < 3; i++ {
		f.step()
	}

	if f.particles.calls() != 0 || len(f.player.plays) != 0 {
		t.Errorf("calls with no device: particles=%d sounds=%d", f.particles.calls(), len(f.player.plays))
	}
	if f.ctrl.Hand(input.Left).Held {
		t.Error("hand state changed with no device")
	}
	if got := f.count("toyball.skipped_frames"); got != 3 {
		t.Errorf("skipped_frames = %d, want 3", got)
	}

	f.hydra.SetConnected(true)
	f.step()
	if !f.ctrl.Hand(input.Left).Held {
		t.Error("controller should resume once the device is back")
	}
}

func TestNilControllerIsNoOp(t *testing.T) {
	particles := &recordingParticles{System: particle.NewSystem()}
	ctrl := New(Deps{Particles: particles}, DefaultTuning())
	ctrl.Update(frame)
	if particles.calls() != 0 {
		t.Errorf("particle calls = %d", particles.calls())
	}
}

func TestSpawnCreatesOneBall(t *testing.T) {
	f := newFixture(t)
	f.hydra.Press(input.Right, false, true)
	f.step()

	if len(f.particles.adds) != 1 {
		t.Fatalf("adds = %d, want 1", len(f.particles.adds))
	}
	props := f.particles.adds[0]
	want := holdOf(vmath.V3(0.3, 1, -0.1), vmath.V3(0, 0, -1))

	if !vmath.V3ApproxEqual(props.Position, want, 1e-12) {
		t.Errorf("position = %v, want %v", props.Position, want)
	}
	if props.Color != (particle.Color{R: 255}) || props.Radius != 0.05 || props.Damping != 0.999 {
		t.Errorf("ball properties = %+v", props)
	}
	if props.Lifetime != 10*time.Second || !props.InHand {
		t.Errorf("lifetime/in hand = %v/%v", props.Lifetime, props.InHand)
	}
	if !props.Velocity.IsZero() || !props.Gravity.IsZero() {
		t.Errorf("velocity/gravity = %v/%v, want zero", props.Velocity, props.Gravity)
	}

	if len(f.player.plays) != 1 || f.player.plays[0].sound != f.sounds.Catch {
		t.Fatalf("plays = %+v, want one catch sound", f.player.plays)
	}
	if p := f.player.plays[0].opts; p.Position != props.Position || p.Volume != 1 {
		t.Errorf("catch sound options = %+v", p)
	}

	hand := f.ctrl.Hand(input.Right)
	if !hand.Held || hand.Particle.IsZero() {
		t.Errorf("hand = %+v, want holding the new ball", hand)
	}
	if f.count("toyball.RIGHT.spawns") != 1 {
		t.Error("spawn counter not incremented")
	}
}

func TestSpawnOnlyOncePerPress(t *testing.T) {
	f := newFixture(t)
	f.hydra.Press(input.Left, false, true)
	for i := 0; i < 5; i++ {
		f.step()
	}
	if len(f.particles.adds) != 1 {
		t.Errorf("adds = %d, want 1 while the ball is held", len(f.particles.adds))
	}
	if len(f.player.plays) != 1 {
		t.Errorf("plays = %d, want 1", len(f.player.plays))
	}
}

func TestForwardButtonAloneDoesNotSpawn(t *testing.T) {
	f := newFixture(t)
	f.hydra.Press(input.Left, true, false)
	f.step()
	if len(f.particles.adds) != 0 || f.ctrl.Hand(input.Left).Held {
		t.Error("forward button with nothing to catch should not spawn")
	}
}

func TestHoldFollowsHand(t *testing.T) {
	f := newFixture(t)
	f.hydra.Press(input.Left, true, true)
	f.step()
	id := f.ctrl.Hand(input.Left).Particle

	// Give the ball motion that holding must not touch
	f.particles.System.Edit(id, particle.Edit{
		Velocity: particle.Ref(vmath.V3(1, 2, 3)),
		Gravity:  particle.Ref(vmath.V3(0, -9, 0)),
	})
	f.reset()

	palm, tip, normal := vmath.V3(0, 1.5, 0), vmath.V3(0, 1.5, -0.2), vmath.V3(0, 1, 0)
	f.hydra.PlaceHand(input.Left, palm, tip, normal)
	f.step()

	st, _ := f.particles.System.Get(id)
	want := holdOf(tip, normal)
	if !vmath.V3ApproxEqual(st.Position, want, 1e-12) {
		t.Errorf("held position = %v, want %v", st.Position, want)
	}
	if st.Velocity != vmath.V3(1, 2, 3) || st.Gravity != vmath.V3(0, -9, 0) {
		t.Errorf("hold touched velocity/gravity: %+v", st)
	}
	if len(f.particles.edits) != 1 || f.particles.edits[0].Velocity != nil || f.particles.edits[0].Gravity != nil {
		t.Errorf("hold edits = %+v, want a single position edit", f.particles.edits)
	}
	if len(f.player.plays) != 0 {
		t.Error("holding should be silent")
	}
	if f.ctrl.Hand(input.Left).HoldPosition != want {
		t.Error("hold position not tracked")
	}
}

func TestReleaseThrows(t *testing.T) {
	f := newFixture(t)
	f.hydra.Press(input.Right, false, true)
	f.step()
	id := f.ctrl.Hand(input.Right).Particle
	lastHold := f.ctrl.Hand(input.Right).HoldPosition
	f.reset()

	f.hydra.Press(input.Right, false, false)
	f.hydra.SetVelocity(parameter.RightTip, vmath.V3(2, 1, -4))
	f.step()

	if len(f.particles.edits) != 1 {
		t.Fatalf("edits = %d, want 1", len(f.particles.edits))
	}
	edit := f.particles.edits[0]
	if edit.Velocity == nil || *edit.Velocity != vmath.V3(3, 1.5, -6) {
		t.Errorf("thrown velocity = %v, want tip velocity x1.5", edit.Velocity)
	}
	if edit.Gravity == nil || *edit.Gravity != vmath.V3(0, -2, 0) {
		t.Errorf("thrown gravity = %v", edit.Gravity)
	}
	if edit.InHand == nil || *edit.InHand {
		t.Error("in hand flag not cleared")
	}

	st, _ := f.particles.System.Get(id)
	if st.InHand || st.Velocity != vmath.V3(3, 1.5, -6) {
		t.Errorf("particle after throw = %+v", st)
	}

	if len(f.player.plays) != 1 || f.player.plays[0].sound != f.sounds.Throw {
		t.Fatalf("plays = %+v, want one throw sound", f.player.plays)
	}
	if f.player.plays[0].opts.Position != lastHold {
		t.Errorf("throw sound at %v, want last hold position %v", f.player.plays[0].opts.Position, lastHold)
	}

	hand := f.ctrl.Hand(input.Right)
	if hand.Held || !hand.Particle.IsZero() {
		t.Errorf("hand after throw = %+v, want empty", hand)
	}
	if f.count("toyball.RIGHT.throws") != 1 {
		t.Error("throw counter not incremented")
	}

	// Empty hand with nothing pressed stays idle
	f.reset()
	f.step()
	if f.particles.calls() != 0 || len(f.player.plays) != 0 {
		t.Error("idle hand issued calls")
	}
}

func TestCatchBeatsSpawn(t *testing.T) {
	f := newFixture(t)
	ball := f.particles.System.Add(particle.Properties{
		Position: vmath.V3(-0.3, 1.2, 0), // 0.2 from the left palm
		Velocity: vmath.V3(0, -3, 0),
		Gravity:  vmath.V3(0, -2, 0),
		Radius:   0.05,
	})

	f.hydra.Press(input.Left, true, true)
	f.step()

	if len(f.particles.adds) != 0 {
		t.Fatal("spawned instead of catching")
	}
	hand := f.ctrl.Hand(input.Left)
	if !hand.Held || hand.Particle != ball {
		t.Fatalf("hand = %+v, want holding %v", hand, ball)
	}

	st, _ := f.particles.System.Get(ball)
	want := holdOf(vmath.V3(-0.3, 1, -0.1), vmath.V3(0, 0, -1))
	if !vmath.V3ApproxEqual(st.Position, want, 1e-12) || !st.Velocity.IsZero() || !st.InHand {
		t.Errorf("caught ball = %+v", st)
	}
	if len(f.player.plays) != 1 || f.player.plays[0].sound != f.sounds.Catch {
		t.Errorf("plays = %+v, want one catch sound", f.player.plays)
	}
	if f.count("toyball.LEFT.catches") != 1 {
		t.Error("catch counter not incremented")
	}
}

func TestCatchOutOfRangeFallsThroughToSpawn(t *testing.T) {
	f := newFixture(t)
	f.particles.System.Add(particle.Properties{Position: vmath.V3(-0.3, 1.3, 0)})

	f.hydra.Press(input.Left, true, true)
	f.step()

	if f.particles.finds != 1 {
		t.Errorf("finds = %d, want 1", f.particles.finds)
	}
	if len(f.particles.adds) != 1 {
		t.Errorf("adds = %d, want spawn when nothing is in reach", len(f.particles.adds))
	}
}

func TestHandsAreIndependent(t *testing.T) {
	f := newFixture(t)
	f.hydra.Press(input.Left, false, true)
	f.step()
	left := f.ctrl.Hand(input.Left)

	f.hydra.Press(input.Right, false, true)
	f.step()
	right := f.ctrl.Hand(input.Right)

	if left.Particle == right.Particle {
		t.Fatal("both hands hold the same ball")
	}
	if f.ctrl.Hand(input.Left) != left {
		t.Error("right spawn changed the left hand")
	}

	// Right throws, left keeps holding
	f.hydra.Press(input.Right, false, false)
	f.step()
	if f.ctrl.Hand(input.Right).Held {
		t.Error("right hand should be empty after release")
	}
	if got := f.ctrl.Hand(input.Left); !got.Held || got.Particle != left.Particle {
		t.Errorf("left hand = %+v after right throw", got)
	}
}

func TestHeldBallThatExpiresIsDropped(t *testing.T) {
	f := newFixture(t)
	f.hydra.Press(input.Left, false, true)
	f.step()
	id := f.ctrl.Hand(input.Left).Particle

	f.particles.System.Remove(id)
	f.reset()
	f.step()

	if f.ctrl.Hand(input.Left).Held {
		t.Error("hand still holds a removed ball")
	}
	if len(f.player.plays) != 0 {
		t.Error("losing a ball should be silent")
	}
	if f.count("toyball.LEFT.lost") != 1 {
		t.Error("lost counter not incremented")
	}

	// Next frame spawns a fresh ball because the side button is still down
	f.step()
	if len(f.particles.adds) != 1 || !f.ctrl.Hand(input.Left).Held {
		t.Error("hand should be able to spawn again")
	}
}

func TestAttachToLoopSignal(t *testing.T) {
	f := newFixture(t)
	var sig engine.Signal
	conn := f.ctrl.Attach(&sig)

	f.hydra.Press(input.Left, false, true)
	sig.Emit(frame)
	if !f.ctrl.Hand(input.Left).Held {
		t.Fatal("attached controller did not run")
	}

	conn.Disconnect()
	f.hydra.Press(input.Left, false, false)
	sig.Emit(frame)
	if !f.ctrl.Hand(input.Left).Held {
		t.Error("detached controller still ran")
	}
}

func TestDebugTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	hydra := input.NewHydra()
	ctrl := New(Deps{
		Controller: hydra,
		Particles:  particle.NewSystem(),
		Logger:     zap.New(core),
	}, DefaultTuning())

	hydra.Press(input.Left, false, true)
	ctrl.Update(frame)
	ctrl.Update(frame)
	hydra.Press(input.Left, false, false)
	ctrl.Update(frame)

	if logs.FilterMessage("BALL IN HAND, grabbing, hold and move").Len() != 1 {
		t.Error("missing hold trace")
	}
	throws := logs.FilterMessage("BALL IN HAND, not grabbing, THROW").All()
	if len(throws) != 1 || throws[0].ContextMap()["hand"] != "LEFT" {
		t.Errorf("throw trace = %+v", throws)
	}

	hydra.SetConnected(false)
	ctrl.Update(frame)
	ctrl.Update(frame)
	lost := logs.FilterMessage("no hydra connected?").All()
	if len(lost) != 1 {
		t.Fatal("lost device should be logged once")
	}
	if lost[0].Level != zapcore.DebugLevel {
		t.Errorf("lost device level = %v, want debug", lost[0].Level)
	}
}

func TestTuningOverrides(t *testing.T) {
	f := newFixture(t)
	tuning := DefaultTuning()
	tuning.ThrowScale = 2
	tuning.ThrowGravity = -9.8
	tuning.BallColor = particle.Color{B: 255}
	f.ctrl = New(Deps{Controller: f.hydra, Particles: f.particles, Player: f.player, Sounds: f.sounds}, tuning)

	f.hydra.Press(input.Left, false, true)
	f.step()
	if f.particles.adds[0].Color != (particle.Color{B: 255}) {
		t.Errorf("color = %+v", f.particles.adds[0].Color)
	}

	f.hydra.Press(input.Left, false, false)
	f.hydra.SetVelocity(parameter.LeftTip, vmath.V3(1, 0, 0))
	f.step()
	edit := f.particles.edits[len(f.particles.edits)-1]
	if *edit.Velocity != vmath.V3(2, 0, 0) || *edit.Gravity != vmath.V3(0, -9.8, 0) {
		t.Errorf("throw edit = %v / %v", *edit.Velocity, *edit.Gravity)
	}
}

// vanishingParticles reports a particle that no longer exists as closest
type vanishingParticles struct {
	*recordingParticles
	stale particle.ID
}

func (v *vanishingParticles) FindClosest(vmath.Vec3, float64) (particle.ID, bool) {
	return v.stale, true
}

func TestCatchOfVanishedParticleFallsThroughToSpawn(t *testing.T) {
	f := newFixture(t)
	stale := f.particles.System.Add(particle.Properties{Position: vmath.V3(-0.3, 1, 0)})
	f.particles.System.Remove(stale)

	vp := &vanishingParticles{recordingParticles: f.particles, stale: stale}
	f.ctrl = New(Deps{Controller: f.hydra, Particles: vp, Player: f.player, Sounds: f.sounds, Registry: f.reg}, DefaultTuning())

	f.hydra.Press(input.Left, true, true)
	f.step()

	hand := f.ctrl.Hand(input.Left)
	if !hand.Held || hand.Particle == stale {
		t.Fatalf("hand = %+v, want holding a fresh ball", hand)
	}
	if f.count("toyball.LEFT.catches") != 0 || f.count("toyball.LEFT.spawns") != 1 {
		t.Errorf("catches = %d, spawns = %d", f.count("toyball.LEFT.catches"), f.count("toyball.LEFT.spawns"))
	}
	if len(f.player.plays) != 1 {
		t.Errorf("plays = %d, want only the spawn sound", len(f.player.plays))
	}
}

func TestCatchOfVanishedParticleWithoutSpawnStaysEmpty(t *testing.T) {
	f := newFixture(t)
	stale := f.particles.System.Add(particle.Properties{Position: vmath.V3(-0.3, 1, 0)})
	f.particles.System.Remove(stale)

	vp := &vanishingParticles{recordingParticles: f.particles, stale: stale}
	f.ctrl = New(Deps{Controller: f.hydra, Particles: vp, Player: f.player, Sounds: f.sounds, Registry: f.reg}, DefaultTuning())

	f.hydra.Press(input.Left, true, false)
	f.step()

	if f.ctrl.Hand(input.Left).Held {
		t.Error("hand holds a particle that no longer exists")
	}
	if len(f.player.plays) != 0 || f.count("toyball.LEFT.catches") != 0 {
		t.Errorf("plays = %d, catches = %d", len(f.player.plays), f.count("toyball.LEFT.catches"))
	}
}

func TestHandStatePublished(t *testing.T) {
	f := newFixture(t)
	state := func() string { return f.reg.Strings.Get("toyball.LEFT.state").Load() }

	if got := state(); got != "empty" {
		t.Fatalf("initial state = %q", got)
	}

	steps := []struct {
		fwd, side bool
		want      string
	}{
		{false, true, "spawned"},
		{false, true, "holding"},
		{false, false, "thrown"},
	}
	for _, st := range steps {
		f.hydra.Press(input.Left, st.fwd, st.side)
		f.step()
		if got := state(); got != st.want {
			t.Errorf("state = %q, want %q", got, st.want)
		}
	}

	if got := f.reg.Strings.Get("toyball.RIGHT.state").Load(); got != "empty" {
		t.Errorf("right state = %q", got)
	}
}
