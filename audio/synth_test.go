package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns the sample count
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for range 10000 {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("Stream did not terminate")
	return 0
}

// TestOscillatorSine verifies sine wave generation
func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440.0, 100*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok || n != 100 {
		t.Fatalf("Expected 100 samples ok, got %d ok=%v", n, ok)
	}

	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Errorf("Sample %d channels differ", i)
		}
	}

	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

// TestOscillatorSquare verifies square wave only produces full-scale values
func TestOscillatorSquare(t *testing.T) {
	osc := NewOscillator(220.0, 50*time.Millisecond, WaveSquare, beep.SampleRate(44100))

	samples := make([][2]float64, 50)
	n, _ := osc.Stream(samples)
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1.0 && v != 1.0 {
			t.Errorf("Square wave sample %d should be -1.0 or 1.0, got %f", i, v)
		}
	}
}

// TestOscillatorFinite verifies the stream ends after its duration
func TestOscillatorFinite(t *testing.T) {
	rate := beep.SampleRate(48000)
	osc := NewOscillator(440.0, 10*time.Millisecond, WaveNoise, rate)

	if got, want := drain(t, osc), rate.N(10*time.Millisecond); got != want {
		t.Errorf("Expected %d samples, got %d", want, got)
	}
}

// TestEnvelopeAttack verifies the first sample is silenced by the attack ramp
func TestEnvelopeAttack(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate)
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 100)
	n, _ := env.Stream(samples)
	if n != 100 {
		t.Fatalf("Expected 100 samples, got %d", n)
	}
	if samples[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", samples[0][0])
	}
	if samples[50][0] != 1.0 {
		t.Errorf("Expected full level during sustain, got %f", samples[50][0])
	}
	if samples[99][0] >= samples[90][0] {
		t.Errorf("Expected release to fade: %f then %f", samples[90][0], samples[99][0])
	}
}

// TestVolumeZeroSilent verifies zero volume produces silence
func TestVolumeZeroSilent(t *testing.T) {
	osc := NewOscillator(0, 10*time.Millisecond, WaveSquare, beep.SampleRate(1000))
	s := newVolume(osc, 0)

	samples := make([][2]float64, 10)
	n, _ := s.Stream(samples)
	for i := 0; i < n; i++ {
		if samples[i][0] != 0 {
			t.Fatalf("Expected silence, got %f at %d", samples[i][0], i)
		}
	}
}

func TestEffects(t *testing.T) {
	rate := beep.SampleRate(48000)
	for _, st := range []SoundType{SoundBump, SoundBlip, SoundChime} {
		s := Effect(st, rate, 0.5)
		if s == nil {
			t.Fatalf("Expected effect for %d", st)
		}
		if n := drain(t, s); n == 0 {
			t.Errorf("Expected samples for effect %d", st)
		}
	}

	if Effect(SoundType(99), rate, 1) != nil {
		t.Error("Expected nil for unknown effect")
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	tone := Tone{Freq: 440, Wave: WaveSaw, Duration: 25 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 5 * time.Millisecond}

	if got, want := drain(t, tone.Streamer(rate)), rate.N(tone.Duration); got != want {
		t.Errorf("Expected %d samples, got %d", want, got)
	}
}

func TestWaveLevels(t *testing.T) {
	tests := []struct {
		wave  WaveType
		phase float64
		want  float64
	}{
		{WaveSine, 0.25, 1},
		{WaveSquare, 0.1, 1},
		{WaveSquare, 0.6, -1},
		{WaveSaw, 0, -1},
		{WaveSaw, 0.5, 0},
	}
	for _, tt := range tests {
		if got := tt.wave.level(tt.phase); got != tt.want {
			t.Errorf("Wave %d at %.2f: expected %f, got %f", tt.wave, tt.phase, tt.want, got)
		}
	}
}
