//go:build !unix

package terminal

import (
	"os"
	"time"
)

// unsupportedBackend fails every operation, raw unix terminals are required
type unsupportedBackend struct{}

// NewStdioBackend creates a backend over stdin and stdout
func NewStdioBackend() Backend { return unsupportedBackend{} }

// NewFileBackend creates a backend reading from in and writing to out
func NewFileBackend(in, out *os.File) Backend { return unsupportedBackend{} }

// NewTtyBackend creates a backend over /dev/tty
func NewTtyBackend() Backend { return unsupportedBackend{} }

func (unsupportedBackend) Init() error { return ErrUnsupported }
func (unsupportedBackend) Fini() error { return nil }
func (unsupportedBackend) Size() (int, int, error) { return 0, 0, ErrUnsupported }
func (unsupportedBackend) Write(p []byte) error { return ErrUnsupported }
func (unsupportedBackend) ReadAvailable(time.Duration) ([]byte, error) {
	return nil, ErrUnsupported
}
