package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// ErrIOFailure signals that the byte source failed; pending decoder state is kept
var ErrIOFailure = errors.New("input: source failure")

// defaultPollInterval bounds a single blocking wait so context cancellation is observed
const defaultPollInterval = 100 * time.Millisecond

// Source yields raw input bytes
type Source interface {
	// ReadAvailable returns zero or more bytes, blocking at most timeout
	// A zero timeout polls without blocking
	ReadAvailable(timeout time.Duration) ([]byte, error)
}

// Reader drives a Decoder against a Source
type Reader struct {
	src  Source
	dec  *Decoder
	now  func() time.Time
	poll time.Duration
	ss3  bool
	log  *log.Logger

	queue []Key // Resolved keys not yet returned
}

// ReaderOption configures a Reader
type ReaderOption func(*Reader)

// WithEscapeTimeout sets the lone ESC disambiguation timeout
func WithEscapeTimeout(d time.Duration) ReaderOption {
	return func(r *Reader) { r.dec = NewDecoder(d) }
}

// WithSS3 enables ESC O sequences (xterm F1-F4, application cursor keys)
func WithSS3(on bool) ReaderOption {
	return func(r *Reader) { r.ss3 = on }
}

// WithClock replaces time.Now, used by tests
func WithClock(now func() time.Time) ReaderOption {
	return func(r *Reader) { r.now = now }
}

// WithPollInterval sets the longest single wait of ReadKey
func WithPollInterval(d time.Duration) ReaderOption {
	return func(r *Reader) {
		if d > 0 {
			r.poll = d
		}
	}
}

// WithLogger sets the debug logger, default discards
func WithLogger(l *log.Logger) ReaderOption {
	return func(r *Reader) {
		if l != nil {
			r.log = l
		}
	}
}

// NewReader creates a reader over src
func NewReader(src Source, opts ...ReaderOption) *Reader {
	r := &Reader{
		src:  src,
		dec:  NewDecoder(DefaultEscapeTimeout),
		now:  time.Now,
		poll: defaultPollInterval,
		log:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.dec.SetSS3(r.ss3)
	return r
}

// Decoder exposes the underlying state machine
func (r *Reader) Decoder() *Decoder {
	return r.dec
}

// PollKey returns the next resolved key without blocking
// ok is false when no key is available yet
func (r *Reader) PollKey() (Key, bool, error) {
	if k, ok := r.pop(); ok {
		return k, true, nil
	}
	if err := r.fill(0); err != nil {
		return Key{}, false, err
	}
	k, ok := r.pop()
	return k, ok, nil
}

// ReadKey blocks until a key resolves, ctx is done, or the source fails
func (r *Reader) ReadKey(ctx context.Context) (Key, error) {
	for {
		if k, ok := r.pop(); ok {
			return k, nil
		}
		if err := ctx.Err(); err != nil {
			return Key{}, err
		}

		wait := r.poll
		if deadline, ok := r.dec.Deadline(); ok {
			wait = min(wait, max(deadline.Sub(r.now()), 0))
		}
		if err := r.fill(wait); err != nil {
			return Key{}, err
		}
	}
}

// Reset drops queued keys and any pending sequence
func (r *Reader) Reset() {
	r.queue = r.queue[:0]
	r.dec.Reset()
}

// fill reads once from the source and feeds the decoder, then resolves an expired sequence
func (r *Reader) fill(timeout time.Duration) error {
	data, err := r.src.ReadAvailable(timeout)
	if err != nil {
		r.log.Debug("input source failed", "err", err)
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	now := r.now()
	if len(data) > 0 {
		r.queue = append(r.queue, r.dec.Feed(data, now)...)
	}
	if k, ok := r.dec.Expire(now); ok {
		r.queue = append(r.queue, k)
	}
	return nil
}

func (r *Reader) pop() (Key, bool) {
	if len(r.queue) == 0 {
		return Key{}, false
	}
	k := r.queue[0]
	r.queue = r.queue[1:]
	return k, true
}
