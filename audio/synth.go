package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/toyball/parameter"
)

// partial is one enveloped component of a synthesized cue
type partial struct {
	wave    func(phase float64) float64 // phase in [0,1)
	freq    float64
	gain    float64
	attack  time.Duration
	release time.Duration
}

func sine(phase float64) float64 { return math.Sin(2 * math.Pi * phase) }

func noise(float64) float64 { return rand.Float64()*2 - 1 }

// Synth renders a built-in effect at rate
// Used when no asset is configured for the cue
func Synth(kind SoundKind, rate beep.SampleRate) *Sound {
	var frames [][2]float64
	switch kind {
	case SoundThrow:
		// Noise whoosh
		frames = render(rate, parameter.ThrowSoundDuration, partial{
			wave:    noise,
			gain:    0.5,
			attack:  parameter.ThrowSoundAttack,
			release: parameter.ThrowSoundRelease,
		})
	default:
		// Sine pop with an octave overtone that dies first
		frames = render(rate, parameter.CatchSoundDuration,
			partial{
				wave:    sine,
				freq:    parameter.CatchSoundFreq,
				gain:    0.7,
				attack:  parameter.CatchSoundAttack,
				release: parameter.CatchSoundRelease,
			},
			partial{
				wave:    sine,
				freq:    parameter.CatchSoundFreq * 2,
				gain:    0.3,
				attack:  parameter.CatchSoundAttack,
				release: parameter.CatchSoundRelease / 2,
			},
		)
	}

	snd, _ := NewSound(kind.String(), &pcmStreamer{frames: frames}, rate, rate)
	return snd
}

// render sums parts into duration of mono-in-stereo frames
func render(rate beep.SampleRate, duration time.Duration, parts ...partial) [][2]float64 {
	total := rate.N(duration)
	frames := make([][2]float64, total)

	for _, p := range parts {
		attack := min(rate.N(p.attack), total)
		release := min(rate.N(p.release), total-attack)
		step := p.freq / float64(rate)
		phase := 0.0

		for i := range frames {
			v := p.wave(phase) * p.gain * ramp(i, total, attack, release)
			frames[i][0] += v
			frames[i][1] += v
			phase += step
			phase -= math.Floor(phase)
		}
	}
	return frames
}

// ramp is the linear attack/release gain of frame i
func ramp(i, total, attack, release int) float64 {
	g := 1.0
	if i < attack {
		g = float64(i) / float64(attack)
	}
	if release > 0 && i >= total-release {
		g = min(g, float64(total-i)/float64(release))
	}
	return g
}
