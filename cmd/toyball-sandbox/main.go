package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/toyball/audio"
	"github.com/lixenwraith/toyball/config"
	"github.com/lixenwraith/toyball/engine"
	"github.com/lixenwraith/toyball/input"
	"github.com/lixenwraith/toyball/logger"
	"github.com/lixenwraith/toyball/parameter"
	"github.com/lixenwraith/toyball/particle"
	"github.com/lixenwraith/toyball/status"
	"github.com/lixenwraith/toyball/toyball"
	"github.com/lixenwraith/toyball/vmath"
)

// sandbox wires a simulated Hydra to the toyball controller on a terminal
type sandbox struct {
	screen    tcell.Screen
	logger    *zap.Logger
	keys      input.KeyMap
	hydra     *input.Hydra
	driver    *handDriver
	particles *particle.System
	audio     *audio.Engine
	loop      *engine.Loop
	ctrl      *toyball.HandBallController
	renderer  *renderer
}

func newSandbox(cfg *config.Config, screen tcell.Screen, log *zap.Logger, audioOpts ...audio.EngineOption) (*sandbox, error) {
	keys, err := cfg.KeyMap()
	if err != nil {
		return nil, err
	}

	reg := status.NewRegistry()
	hydra := input.NewHydra()
	particles := particle.NewSystem(particle.WithFloor(cfg.Sandbox.FloorY))
	loop := engine.NewLoop(cfg.Loop.Interval, nil, reg)

	eng := audio.NewEngine(cfg.Audio, reg, append([]audio.EngineOption{audio.WithLogger(log)}, audioOpts...)...)
	sounds, err := audio.LoadSounds(cfg.Audio, eng.SampleRate())
	if err != nil {
		log.Warn("sound assets unavailable, using synth", zap.Error(err))
	}
	eng.SetListener(audio.Listener{
		Position: vmath.V3(0, parameter.SandboxHandHeight, 0.5),
		Right:    vmath.V3(1, 0, 0),
	})

	s := &sandbox{
		screen:    screen,
		logger:    log,
		keys:      keys,
		hydra:     hydra,
		driver:    newHandDriver(hydra, cfg.Sandbox.HandImpulse, cfg.Sandbox.HandDrag),
		particles: particles,
		audio:     eng,
		loop:      loop,
	}

	// Hands move before the controller samples them
	loop.Update().Connect(s.driver.Update)

	s.ctrl = toyball.New(toyball.Deps{
		Controller: hydra,
		Particles:  particles,
		Player:     eng,
		Sounds:     sounds,
		Logger:     log,
		Registry:   reg,
	}, cfg.Tuning)
	s.ctrl.Attach(loop.Update())

	s.renderer = &renderer{
		screen:    screen,
		particles: particles,
		hydra:     hydra,
		ctrl:      s.ctrl,
		reg:       reg,
		clock:     loop.Clock(),
		scale:     cfg.Sandbox.Scale,
		floorY:    cfg.Sandbox.FloorY,
	}
	loop.AddSystem(particles)
	loop.AddSystem(s.renderer)

	return s, nil
}

// isQuit reports keys that end the session regardless of the keymap
func (s *sandbox) isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		e, ok := s.keys.Lookup(ev.Rune())
		return ok && e.Action == input.ActionQuit
	}
	return false
}

// handleKey applies one key press, must run on the loop goroutine
func (s *sandbox) handleKey(ev *tcell.EventKey) {
	if ev.Key() != tcell.KeyRune {
		return
	}
	e, ok := s.keys.Lookup(ev.Rune())
	if !ok {
		return
	}

	switch e.Action {
	case input.ActionPause:
		paused := s.loop.Clock().Toggle()
		s.logger.Debug("pause toggled", zap.Bool("paused", paused))
		s.renderer.Draw()
	case input.ActionMute:
		audible := s.audio.ToggleMute()
		s.logger.Debug("mute toggled", zap.Bool("audible", audible))
	default:
		s.driver.Apply(e)
	}
}

// pollEvents forwards terminal events into the loop until the screen closes
func (s *sandbox) pollEvents(cancel context.CancelFunc) {
	defer func() {
		if r := recover(); r != nil {
			s.screen.Fini()
			fmt.Fprintf(os.Stderr, "\r\nEVENT POLLER CRASHED: %v\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.loop.Post(func() {
				s.screen.Sync()
				s.renderer.Draw()
			})
		case *tcell.EventKey:
			if s.isQuit(ev) {
				cancel()
				return
			}
			if !s.loop.Post(func() { s.handleKey(ev) }) {
				s.logger.Debug("input dropped, inbox full")
			}
		}
	}
}

func (s *sandbox) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.audio.Start(); err != nil {
		return fmt.Errorf("start audio: %w", err)
	}
	defer s.audio.Stop()

	go s.pollEvents(cancel)

	s.logger.Info("sandbox started", zap.Duration("interval", s.loop.Interval()))
	err := s.loop.Run(ctx)
	s.logger.Info("sandbox stopped", zap.Uint64("frames", s.loop.Frames()))
	return err
}

func main() {
	var screen tcell.Screen

	// Panic Recovery: Ensure terminal is reset even if the sandbox crashes
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\nTOYBALL CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	configPath := flag.String("config", "", "YAML config file (TOYBALL_* env vars override it)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal init: %v\n", err)
		os.Exit(1)
	}

	sb, err := newSandbox(cfg, screen, log)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "sandbox: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = sb.run(ctx)
	stop()
	screen.Fini()

	if err != nil {
		log.Error("sandbox failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "sandbox: %v\n", err)
		os.Exit(1)
	}
}
