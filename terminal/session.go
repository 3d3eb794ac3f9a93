// @lixen: #interact{state[raw,altscreen],trigger[enter,exit]}
package terminal

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Session owns a backend in raw mode between Enter and Exit
// Exit is safe to call multiple times and from a deferred recover
type Session struct {
	backend Backend
	log     *log.Logger

	altScreen  bool
	hideCursor bool

	mu            sync.Mutex
	active        bool
	cursorVisible bool

	// Incremented on every Enter, a renderer seeing a new value repaints everything
	epoch atomic.Uint64
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithAltScreen selects the alternate screen buffer, default on
func WithAltScreen(on bool) SessionOption {
	return func(s *Session) { s.altScreen = on }
}

// WithHiddenCursor hides the cursor while the session is active, default on
func WithHiddenCursor(on bool) SessionOption {
	return func(s *Session) { s.hideCursor = on }
}

// WithLogger sets the debug logger, default discards
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSession creates an inactive session over b
func NewSession(b Backend, opts ...SessionOption) *Session {
	s := &Session{
		backend:       b,
		log:           log.New(io.Discard),
		altScreen:     true,
		hideCursor:    true,
		cursorVisible: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enter switches to raw mode, optionally the alternate screen, disables auto-wrap and clears
func (s *Session) Enter() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return nil
	}

	if err := s.backend.Init(); err != nil {
		return err
	}

	seq := make([]byte, 0, 64)
	if s.altScreen {
		seq = append(seq, csiAltScreenEnter...)
	}
	if s.hideCursor {
		seq = append(seq, csiCursorHide...)
	}
	seq = append(seq, csiAutoWrapOff...)
	seq = append(seq, csiSGR0...)
	seq = append(seq, csiClear...)

	if err := s.backend.Write(seq); err != nil {
		s.backend.Fini()
		return fmt.Errorf("terminal: session setup: %w", err)
	}

	s.active = true
	s.cursorVisible = !s.hideCursor
	e := s.epoch.Add(1)
	s.log.Debug("session entered", "alt_screen", s.altScreen, "epoch", e)
	return nil
}

// Exit restores cursor, screen buffer, auto-wrap, attributes and the terminal mode
func (s *Session) Exit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil
	}
	s.active = false

	seq := make([]byte, 0, 64)
	seq = append(seq, csiSGR0...)
	seq = append(seq, csiCursorShow...)
	if s.altScreen {
		seq = append(seq, csiAltScreenExit...)
	}
	// Re-enable auto-wrap after leaving the alternate screen so the main buffer wraps
	seq = append(seq, csiAutoWrapOn...)

	werr := s.backend.Write(seq)
	ferr := s.backend.Fini()
	s.cursorVisible = true
	s.log.Debug("session exited", "write_err", werr, "fini_err", ferr)
	return errors.Join(werr, ferr)
}

// Run enters the session, calls fn and exits whether fn returns, fails or panics
// A panic is re-raised after the terminal is restored
func (s *Session) Run(fn func() error) (err error) {
	if err := s.Enter(); err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			s.Exit()
			panic(p)
		}
		if exitErr := s.Exit(); err == nil {
			err = exitErr
		}
	}()

	return fn()
}

// Active reports whether the session is entered
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SetCursorVisible shows or hides the cursor
func (s *Session) SetCursorVisible(visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrInactive
	}
	if s.cursorVisible == visible {
		return nil
	}

	seq := csiCursorHide
	if visible {
		seq = csiCursorShow
	}
	if err := s.backend.Write(seq); err != nil {
		return err
	}
	s.cursorVisible = visible
	return nil
}

// Epoch changes every time the session is entered
func (s *Session) Epoch() uint64 {
	return s.epoch.Load()
}

// Size returns current terminal dimensions
func (s *Session) Size() (int, int, error) {
	return s.backend.Size()
}

// WriteRaw writes a complete frame
func (s *Session) WriteRaw(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrInactive
	}
	return s.backend.Write(p)
}

// ReadAvailable returns pending input bytes, blocking at most timeout
func (s *Session) ReadAvailable(timeout time.Duration) ([]byte, error) {
	if !s.Active() {
		return nil, ErrInactive
	}
	return s.backend.ReadAvailable(timeout)
}
