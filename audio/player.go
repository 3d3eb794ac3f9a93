package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Config controls sound output
type Config struct {
	Enabled bool
	Volume  float64 // 0.0 - 1.0
}

// Player mixes sound effects onto the default audio device
// Audio is optional: when the device cannot be opened every call is a no-op
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	enabled     bool
	volume      float64
	initialized bool
	log         *log.Logger
}

// NewPlayer creates an uninitialized player, nil logger discards
func NewPlayer(cfg Config, l *log.Logger) *Player {
	if l == nil {
		l = log.New(io.Discard)
	}
	return &Player{
		mixer:   &beep.Mixer{},
		enabled: cfg.Enabled,
		volume:  clampVolume(cfg.Volume),
		log:     l,
	}
}

// Init opens the speaker when sound is enabled
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.enabled {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		p.log.Debug("speaker init failed, sound disabled", "err", err)
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues an effect, dropped when disabled or not initialized
func (p *Player) Play(t SoundType) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || !p.enabled {
		return
	}

	s := Effect(t, sampleRate, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// SetEnabled toggles playback, the device stays open
func (p *Player) SetEnabled(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = on
}

// SetVolume sets the effect volume, clamped to 0.0 - 1.0
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clampVolume(v)
}

// Enabled reports whether effects are played
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Close stops all sounds
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	p.initialized = false
}

func clampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}
