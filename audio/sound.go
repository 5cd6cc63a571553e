package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/toyball/parameter"
)

// resampleQuality is the beep.Resample interpolation quality for asset conversion
const resampleQuality = 4

// Sound is a decoded, engine-rate stereo sample buffer
// Safe to play concurrently; every play reads through its own streamer
type Sound struct {
	name   string
	buffer *beep.Buffer
}

// NewSound drains s (recorded at from) into a buffer at rate
func NewSound(name string, s beep.Streamer, from, rate beep.SampleRate) (*Sound, error) {
	if from != rate {
		s = beep.Resample(resampleQuality, from, rate, s)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptySound)
	}
	return &Sound{name: name, buffer: buf}, nil
}

func (s *Sound) Name() string {
	return s.name
}

// Len returns the length in samples
func (s *Sound) Len() int {
	return s.buffer.Len()
}

// SampleRate returns the buffer rate
func (s *Sound) SampleRate() beep.SampleRate {
	return s.buffer.Format().SampleRate
}

func (s *Sound) Duration() time.Duration {
	return s.SampleRate().D(s.buffer.Len())
}

// Streamer returns a fresh reader positioned at the start
func (s *Sound) Streamer() beep.StreamSeeker {
	return s.buffer.Streamer(0, s.buffer.Len())
}

// LoadSound reads a .wav or .raw asset and converts it to rate
func LoadSound(path string, rate beep.SampleRate) (*Sound, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}
	defer f.Close()

	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return DecodeWAV(name, f, rate)
	case ".raw":
		return DecodeRaw(name, f, beep.SampleRate(parameter.RawSampleRate), rate)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
}

// DecodeWAV decodes a RIFF/WAVE stream
func DecodeWAV(name string, r io.Reader, rate beep.SampleRate) (*Sound, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	defer streamer.Close()

	return NewSound(name, streamer, format.SampleRate, rate)
}

// DecodeRaw decodes headerless 16-bit signed little-endian mono PCM recorded at from
// A trailing odd byte is ignored
func DecodeRaw(name string, r io.Reader, from, rate beep.SampleRate) (*Sound, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	frames := make([][2]float64, len(data)/2)
	for i := range frames {
		v := float64(int16(binary.LittleEndian.Uint16(data[i*2:]))) / 32768
		frames[i] = [2]float64{v, v}
	}
	return NewSound(name, &pcmStreamer{frames: frames}, from, rate)
}

// pcmStreamer plays an in-memory frame slice once
type pcmStreamer struct {
	frames [][2]float64
	pos    int
}

func (p *pcmStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if p.pos >= len(p.frames) {
		return 0, false
	}
	n = copy(samples, p.frames[p.pos:])
	p.pos += n
	return n, true
}

func (p *pcmStreamer) Err() error { return nil }
