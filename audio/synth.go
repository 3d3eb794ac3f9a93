package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// level returns the waveform value at phase, phase in [0, 1)
func (w WaveType) level(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveNoise:
		return rand.Float64()*2 - 1
	}
	return math.Sin(2 * math.Pi * phase)
}

// Tone is one enveloped note
type Tone struct {
	Freq     float64
	Wave     WaveType
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
}

// Streamer renders the tone at rate
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(t.Freq, t.Duration, t.Wave, rate)
	return NewEnvelope(osc, t.Duration, t.Attack, t.Release, rate)
}

// NewOscillator returns a mono wave duplicated on both channels that ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	left := rate.N(duration)
	step := freq / float64(rate)
	phase := 0.0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n := min(len(samples), left)
		for i := range n {
			v := wave.level(phase)
			samples[i] = [2]float64{v, v}
			_, phase = math.Modf(phase + step)
		}
		left -= n
		return n, n > 0
	})
}

// ramp is a linear attack/release gain curve over total samples
type ramp struct {
	attack, release, total int
}

func (r ramp) gain(pos int) float64 {
	switch {
	case r.release > 0 && pos >= r.total-r.release:
		return max(float64(r.total-pos)/float64(r.release), 0)
	case r.attack > 0 && pos < r.attack:
		return float64(pos) / float64(r.attack)
	}
	return 1
}

// shaped applies a ramp to its source and cuts it at the ramp's end
type shaped struct {
	src beep.Streamer
	ramp
	pos int
}

// NewEnvelope fades s in over attack and out over the last release of duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &shaped{
		src:  s,
		ramp: ramp{attack: rate.N(attack), release: rate.N(release), total: rate.N(duration)},
	}
}

func (s *shaped) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.total {
		return 0, false
	}
	n, ok := s.src.Stream(samples[:min(len(samples), s.total-s.pos)])
	for i := range n {
		g := s.gain(s.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		s.pos++
	}
	return n, ok
}

func (s *shaped) Err() error { return s.src.Err() }

// newVolume scales s by a linear factor
// effects.Volume works in log2 steps, so zero maps to Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
