package audio

import "github.com/lixenwraith/toyball/parameter"

// Config controls the audio engine and sound assets
type Config struct {
	Enabled      bool    `yaml:"enabled" env:"ENABLED"`
	MasterVolume float64 `yaml:"master_volume" env:"MASTER_VOLUME"` // 0.0-1.0
	SampleRate   int     `yaml:"sample_rate" env:"SAMPLE_RATE"`

	// Asset paths (.wav or 16-bit LE mono .raw); empty uses the built-in synth
	CatchSound string `yaml:"catch_sound" env:"CATCH_SOUND"`
	ThrowSound string `yaml:"throw_sound" env:"THROW_SOUND"`
}

// DefaultConfig returns an enabled engine at full volume with synthesized sounds
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 1.0,
		SampleRate:   parameter.AudioSampleRate,
	}
}
