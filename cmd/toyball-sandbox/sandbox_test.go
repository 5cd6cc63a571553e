package main

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"go.uber.org/zap"

	"github.com/lixenwraith/toyball/audio"
	"github.com/lixenwraith/toyball/config"
	"github.com/lixenwraith/toyball/input"
	"github.com/lixenwraith/toyball/particle"
	"github.com/lixenwraith/toyball/vmath"
)

type nullOutput struct{}

func (nullOutput) Init(beep.SampleRate, int) error { return nil }
func (nullOutput) Play(beep.Streamer)              {}
func (nullOutput) Clear()                          {}

const frame = 16 * time.Millisecond

func newTestSandbox(t *testing.T) *sandbox {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 30)

	sb, err := newSandbox(config.Default(), screen, zap.NewNop(), audio.WithOutput(nullOutput{}))
	if err != nil {
		t.Fatalf("newSandbox: %v", err)
	}
	return sb
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func cellAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestSandboxSpawnAndThrow(t *testing.T) {
	sb := newTestSandbox(t)

	sb.handleKey(key('c')) // left spawn on
	sb.loop.Step(frame)
	if n := sb.particles.Len(); n != 1 {
		t.Fatalf("particles = %d, want 1", n)
	}
	if !sb.ctrl.Hand(input.Left).Held {
		t.Fatal("left hand not holding after spawn")
	}

	sb.handleKey(key('w'))
	sb.loop.Step(frame)
	sb.handleKey(key('c')) // release while moving forward
	sb.loop.Step(frame)

	if sb.ctrl.Hand(input.Left).Held {
		t.Fatal("ball still held after release")
	}
	var st particle.State
	sb.particles.Each(func(_ particle.ID, s particle.State) { st = s })
	if st.InHand || st.Velocity.Z >= 0 {
		t.Errorf("thrown ball state = %+v", st)
	}
}

func TestSandboxPause(t *testing.T) {
	sb := newTestSandbox(t)

	sb.handleKey(key('p'))
	if !sb.loop.Clock().IsPaused() {
		t.Fatal("not paused")
	}
	sb.loop.Step(frame)
	if sb.loop.Frames() != 0 {
		t.Errorf("frames advanced while paused: %d", sb.loop.Frames())
	}

	sb.handleKey(key('p'))
	sb.loop.Step(frame)
	if sb.loop.Frames() != 1 {
		t.Errorf("frames = %d after resume", sb.loop.Frames())
	}
}

func TestSandboxMute(t *testing.T) {
	sb := newTestSandbox(t)
	sb.handleKey(key('m'))
	if !sb.audio.IsMuted() {
		t.Error("m did not mute")
	}
}

func TestSandboxQuitKeys(t *testing.T) {
	sb := newTestSandbox(t)
	if !sb.isQuit(key('q')) || !sb.isQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("quit keys not recognized")
	}
	if sb.isQuit(key('w')) {
		t.Error("w treated as quit")
	}
}

func TestSandboxRunStopsOnQuit(t *testing.T) {
	sb := newTestSandbox(t)
	sim := sb.screen.(tcell.SimulationScreen)

	done := make(chan error, 1)
	go func() { done <- sb.run(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop on q")
	}
}

func TestRendererDrawsHandsAndBalls(t *testing.T) {
	sb := newTestSandbox(t)
	sb.particles.Add(particle.Properties{
		Position: vmath.V3(0, 0.5, 0),
		Radius:   0.05,
	})
	sb.renderer.Draw()

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"front corner", 0, 0, '┌'},
		{"floor", 5, 22, '_'},
		{"front left palm", 14, 10, 'l'},
		{"front right palm", 26, 10, 'r'},
		{"front ball", 20, 17, 'o'},
		{"top left palm", 54, 11, 'l'},
	}
	for _, tt := range tests {
		if got := cellAt(sb.screen, tt.x, tt.y); got != tt.want {
			t.Errorf("%s at (%d,%d) = %q, want %q", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRendererShowsHoldingAndPause(t *testing.T) {
	sb := newTestSandbox(t)

	sb.handleKey(key('n')) // right spawn
	sb.loop.Step(frame)
	sb.handleKey(key('p'))

	if got := cellAt(sb.screen, 26, 10); got != 'R' {
		t.Errorf("right palm = %q, want R while holding", got)
	}
	if got := cellAt(sb.screen, 1, 29); got != 'P' {
		t.Errorf("status line = %q, want PAUSED marker", got)
	}
	if got := cellAt(sb.screen, 0, 24); got == ' ' || got == 0 {
		t.Error("HUD row empty")
	}
}

func TestHandGlyph(t *testing.T) {
	if handGlyph(input.Left, false) != 'l' || handGlyph(input.Right, true) != 'R' {
		t.Error("hand glyphs wrong")
	}
}
