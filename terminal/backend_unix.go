//go:build unix

package terminal

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type fileBackend struct {
	in       *os.File
	out      *os.File
	inFd     int
	outFd    int
	oldState *term.State

	buf []byte // Single read buffer, results are copied out
}

// NewStdioBackend creates a backend over stdin and stdout
func NewStdioBackend() Backend {
	return NewFileBackend(os.Stdin, os.Stdout)
}

// NewFileBackend creates a backend reading from in and writing to out
// Both may be the same file, e.g. a pty slave
func NewFileBackend(in, out *os.File) Backend {
	return &fileBackend{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
		buf:   make([]byte, 256),
	}
}

func (b *fileBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return fmt.Errorf("%w: %s", ErrNotTerminal, b.in.Name())
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("terminal: raw mode: %w", err)
	}
	b.oldState = old
	return nil
}

func (b *fileBackend) Fini() error {
	if b.oldState == nil {
		return nil
	}
	err := term.Restore(b.inFd, b.oldState)
	b.oldState = nil
	if err != nil {
		return fmt.Errorf("terminal: restore: %w", err)
	}
	return nil
}

func (b *fileBackend) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("terminal: winsize: %w", err)
	}
	// Unset winsize, e.g. a fresh pty, is reported as unavailable rather than 0x0
	if ws.Col == 0 || ws.Row == 0 {
		return 0, 0, fmt.Errorf("terminal: winsize unset (%dx%d)", ws.Col, ws.Row)
	}
	return int(ws.Col), int(ws.Row), nil
}

func (b *fileBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// ReadAvailable polls the input fd for at most timeout, then reads what is there
func (b *fileBackend) ReadAvailable(timeout time.Duration) ([]byte, error) {
	fds := []unix.PollFd{
		{Fd: int32(b.inFd), Events: unix.POLLIN},
	}

	n, err := unix.Poll(fds, pollMillis(timeout))
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, fmt.Errorf("terminal: poll: %w", err)
	}
	if n == 0 {
		return nil, nil // Timeout
	}
	if fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) == 0 {
		return nil, nil
	}

	rn, err := unix.Read(b.inFd, b.buf)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return nil, nil
		}
		return nil, fmt.Errorf("terminal: read: %w", err)
	}
	if rn == 0 {
		return nil, io.EOF
	}

	ret := make([]byte, rn)
	copy(ret, b.buf[:rn])
	return ret, nil
}

// pollMillis rounds a timeout up to whole milliseconds
func pollMillis(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Millisecond - 1) / time.Millisecond)
}
