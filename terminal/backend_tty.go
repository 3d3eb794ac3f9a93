//go:build unix

package terminal

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// ttyChunk carries one read result from the reader goroutine
type ttyChunk struct {
	data []byte
	err  error
}

// ttyBackend talks to the controlling terminal through tcell's Tty, so it keeps working
// when stdin and stdout are redirected
type ttyBackend struct {
	open func() (tcell.Tty, error)
	tty  tcell.Tty

	reads  chan ttyChunk
	stopCh chan struct{}
	doneCh chan struct{}

	mu     sync.Mutex
	width  int
	height int
	sizeOK bool
}

// NewTtyBackend creates a backend over /dev/tty
func NewTtyBackend() Backend {
	return newTtyBackend(tcell.NewDevTty)
}

func newTtyBackend(open func() (tcell.Tty, error)) *ttyBackend {
	return &ttyBackend{open: open}
}

func (b *ttyBackend) Init() error {
	tty, err := b.open()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotTerminal, err)
	}
	if err := tty.Start(); err != nil {
		tty.Close()
		return fmt.Errorf("terminal: tty start: %w", err)
	}

	b.tty = tty
	b.refreshSize(tty)
	tty.NotifyResize(func() { b.refreshSize(tty) })

	// Each session owns its channels, a reader left over from a previous session
	// can only reach its own
	reads := make(chan ttyChunk, 16)
	stop := make(chan struct{})
	done := make(chan struct{})
	b.reads, b.stopCh, b.doneCh = reads, stop, done
	go readLoop(tty, reads, stop, done)
	return nil
}

func (b *ttyBackend) Fini() error {
	if b.tty == nil {
		return nil
	}

	tty := b.tty
	b.tty = nil
	tty.NotifyResize(nil)

	close(b.stopCh)
	// Drain wakes a reader blocked in Read
	tty.Drain()
	select {
	case <-b.doneCh:
	case <-time.After(100 * time.Millisecond):
		// Reader stuck on blocking read, proceed anyway
	}

	err := tty.Stop()
	if cerr := tty.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("terminal: tty stop: %w", err)
	}
	return nil
}

// Size returns the dimensions cached at start and on every resize notification
func (b *ttyBackend) Size() (int, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.sizeOK {
		return 0, 0, fmt.Errorf("terminal: tty size unavailable")
	}
	return b.width, b.height, nil
}

func (b *ttyBackend) Write(p []byte) error {
	if b.tty == nil {
		return ErrInactive
	}
	n, err := b.tty.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return err
}

func (b *ttyBackend) ReadAvailable(timeout time.Duration) ([]byte, error) {
	if b.reads == nil {
		return nil, ErrInactive
	}

	if timeout <= 0 {
		select {
		case c, ok := <-b.reads:
			return unpackChunk(c, ok)
		default:
			return nil, nil
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case c, ok := <-b.reads:
		return unpackChunk(c, ok)
	case <-timer.C:
		return nil, nil
	}
}

func unpackChunk(c ttyChunk, ok bool) ([]byte, error) {
	if !ok {
		return nil, io.EOF
	}
	return c.data, c.err
}

func (b *ttyBackend) refreshSize(tty tcell.Tty) {
	ws, err := tty.WindowSize()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil || ws.Width <= 0 || ws.Height <= 0 {
		return
	}
	b.width, b.height, b.sizeOK = ws.Width, ws.Height, true
}

// readLoop forwards tty reads until stopped or the tty fails
func readLoop(tty tcell.Tty, reads chan<- ttyChunk, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer close(reads)

	buf := make([]byte, 256)
	for {
		n, err := tty.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case reads <- ttyChunk{data: data}:
			case <-stop:
				return
			}
		}
		if err != nil {
			select {
			case reads <- ttyChunk{err: err}:
			case <-stop:
			}
			return
		}

		select {
		case <-stop:
			return
		default:
		}
	}
}
