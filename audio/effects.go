package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// SoundType identifies a sound effect
type SoundType int

const (
	SoundBump  SoundType = iota // Walker hit the grid edge
	SoundBlip                   // Confirmation, e.g. a benchmark stage finished
	SoundChime                  // Two-note completion chime
)

var (
	// Low saw thud
	bumpTone = Tone{Freq: 110, Wave: WaveSaw, Duration: 80 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 50 * time.Millisecond}
	// Short high tick
	blipTone = Tone{Freq: 1320, Wave: WaveSine, Duration: 40 * time.Millisecond, Attack: time.Millisecond, Release: 25 * time.Millisecond}
	// B5 then E6
	chimeTones = []Tone{
		{Freq: 987.77, Wave: WaveSquare, Duration: 90 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 60 * time.Millisecond},
		{Freq: 1318.51, Wave: WaveSquare, Duration: 90 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 60 * time.Millisecond},
	}
)

// Effect returns a fresh streamer for t at the given volume, nil for unknown types
func Effect(t SoundType, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch t {
	case SoundBump:
		s = bumpTone.Streamer(rate)
	case SoundBlip:
		s = newVolume(blipTone.Streamer(rate), 0.6)
	case SoundChime:
		notes := make([]beep.Streamer, len(chimeTones))
		for i, tone := range chimeTones {
			notes[i] = tone.Streamer(rate)
		}
		s = newVolume(beep.Seq(notes...), 0.4)
	default:
		return nil
	}
	return newVolume(s, volume)
}
