package terminal

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotTerminal is returned by Init when the input is not a terminal
	ErrNotTerminal = errors.New("terminal: not a terminal")

	// ErrInactive is returned for I/O on a session that is not entered
	ErrInactive = errors.New("terminal: session not active")

	// ErrUnsupported is returned for backends unavailable on this platform
	ErrUnsupported = errors.New("terminal: backend not supported on this platform")
)

// Backend abstracts raw terminal access
type Backend interface {
	// Lifecycle
	Init() error
	Fini() error

	// Size returns current terminal dimensions
	Size() (width, height int, err error)

	// Write writes raw bytes, a short write is an error
	Write(p []byte) error

	// ReadAvailable returns zero or more input bytes, blocking at most timeout
	// End of input is reported as io.EOF
	ReadAvailable(timeout time.Duration) ([]byte, error)
}

// Backend names accepted by NewBackend
const (
	BackendStdio = "stdio"
	BackendTty   = "tty"
)

// NewBackend creates a backend by config name
func NewBackend(name string) (Backend, error) {
	switch name {
	case "", BackendStdio:
		return NewStdioBackend(), nil
	case BackendTty:
		return NewTtyBackend(), nil
	}
	return nil, fmt.Errorf("terminal: unknown backend %q", name)
}
