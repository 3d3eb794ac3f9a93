// @lixen: #focus{sys[render,output]}
// @lixen: #interact{trigger[output,ansi]}
package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Output is the raw terminal sink a Renderer flushes frames into
type Output interface {
	// Size returns current terminal dimensions in columns and rows
	Size() (width, height int, err error)

	// WriteRaw writes a complete frame; partial writes must surface as an error
	WriteRaw(p []byte) error
}

// epocher is implemented by outputs that can lose terminal state, e.g. a session
// that was exited and re-entered
type epocher interface {
	Epoch() uint64
}

// FrameStats accumulates renderer output counters
type FrameStats struct {
	Frames    int // Render calls that completed
	Writes    int // Frames that produced output
	Bytes     int // Total bytes written
	LastBytes int // Bytes written by the last frame
	Cells     int // Glyph cells emitted
	Runs      int // Cursor repositionings
}

// Renderer accepts draw calls into the back buffer and flushes the minimal diff
// Single-threaded: callers serialize Write, Clear and Render themselves
type Renderer struct {
	out    Output
	fb     *FrameBuffer
	cursor *CursorTracker
	mode   ColorMode
	log    *log.Logger

	epoch    uint64
	hasEpoch bool

	sgrUnknown bool // Terminal attributes may not be default at frame start

	frame []byte // Reused frame assembly buffer
	stats FrameStats
}

// Option configures a Renderer
type Option func(*Renderer)

// WithColorMode selects SGR color encoding
func WithColorMode(m ColorMode) Option {
	return func(r *Renderer) { r.mode = m }
}

// WithLogger sets the debug logger, default discards
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRenderer creates a renderer sized to the output, falling back to 80x24 when the
// size query fails
func NewRenderer(out Output, opts ...Option) *Renderer {
	r := &Renderer{
		out:   out,
		mode:  ColorModeTrueColor,
		log:   log.New(io.Discard),
		frame: make([]byte, 0, 64*1024),
	}
	for _, opt := range opts {
		opt(r)
	}

	w, h, err := out.Size()
	if err != nil {
		r.log.Debug("size query failed, using fallback", "err", err)
		w, h = 80, 24
	}
	r.fb = NewFrameBuffer(w, h)
	r.cursor = NewCursorTracker(w, h)

	if e, ok := out.(epocher); ok {
		r.epoch = e.Epoch()
		r.hasEpoch = true
	}
	return r
}

// Size returns the dimensions of the current grids
func (r *Renderer) Size() (int, int) {
	return r.fb.Width(), r.fb.Height()
}

// ColorMode returns the SGR color encoding in use
func (r *Renderer) ColorMode() ColorMode {
	return r.mode
}

// Buffer exposes the frame buffer for inspection
func (r *Renderer) Buffer() *FrameBuffer {
	return r.fb
}

// Stats returns accumulated output counters
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Write draws text into the back buffer, no I/O
func (r *Renderer) Write(x, y int, text string, style Style) error {
	_, err := r.fb.Write(x, y, text, style)
	return err
}

// WriteGlyphs draws glyphs with declared widths into the back buffer, no I/O
func (r *Renderer) WriteGlyphs(x, y int, glyphs []Glyph, style Style) error {
	_, err := r.fb.WriteGlyphs(x, y, glyphs, style)
	return err
}

// Clear resets the back buffer without touching the terminal
// The terminal size is re-checked first so the frame composed next uses current dimensions
func (r *Renderer) Clear() {
	r.syncSize()
	r.fb.ClearBack()
}

// Invalidate forces the next Render to redraw every cell from an unknown cursor position
// Use after ErrIOFailure or any external disturbance of the terminal
func (r *Renderer) Invalidate() {
	r.fb.Invalidate()
	r.cursor.Invalidate()
	r.sgrUnknown = true
}

// Render flushes the pending frame with a single write to the output
func (r *Renderer) Render() error {
	r.syncSize()
	r.syncEpoch()

	buf := r.frame[:0]
	last := StyleDefault // Every delivered frame ends with SGR 0, so the terminal starts at default
	forceSGR := r.sgrUnknown
	nextX, nextY := -1, -1
	cells, runs := 0, 0

	for ch := range r.fb.Diff() {
		c := ch.Cell
		if c.IsContinuation() {
			// Painted by its lead glyph
			continue
		}

		if ch.X != nextX || ch.Y != nextY {
			buf = append(buf, r.cursor.MoveTo(ch.X, ch.Y)...)
			runs++
		}

		if forceSGR || c.Style != last {
			// AppendSGR leads with 0, so it also clears leftover attributes
			buf = AppendSGR(buf, c.Style, r.mode)
			last = c.Style
			forceSGR = false
		}
		buf = append(buf, c.Glyph...)
		r.cursor.Advance(c.Width)
		cells++

		nextX, nextY = ch.X+c.Width, ch.Y
	}

	if last != StyleDefault {
		buf = append(buf, csiSGR0...)
	}
	r.frame = buf

	if len(buf) > 0 {
		if err := r.out.WriteRaw(buf); err != nil {
			// Unknown how much reached the terminal
			r.cursor.Invalidate()
			r.sgrUnknown = true
			r.log.Debug("frame write failed", "bytes", len(buf), "err", err)
			return fmt.Errorf("%w: %w", ErrIOFailure, err)
		}
		r.stats.Writes++
		r.sgrUnknown = false
	}

	r.fb.Commit()

	r.stats.Frames++
	r.stats.Bytes += len(buf)
	r.stats.LastBytes = len(buf)
	r.stats.Cells += cells
	r.stats.Runs += runs
	return nil
}

// syncSize reallocates the grids when the terminal dimensions changed
// A failed size query is treated as unchanged
func (r *Renderer) syncSize() {
	w, h, err := r.out.Size()
	if err != nil {
		r.log.Debug("size query failed, keeping current size", "err", err)
		return
	}
	if w == r.fb.Width() && h == r.fb.Height() {
		return
	}
	r.log.Debug("terminal resized", "from_w", r.fb.Width(), "from_h", r.fb.Height(), "w", w, "h", h)
	r.fb.Resize(w, h)
	r.cursor.Resize(w, h)
}

// syncEpoch forces a full redraw when the output reports lost terminal state
func (r *Renderer) syncEpoch() {
	if !r.hasEpoch {
		return
	}
	e := r.out.(epocher).Epoch()
	if e == r.epoch {
		return
	}
	r.log.Debug("output epoch changed, redrawing", "epoch", e)
	r.epoch = e
	r.Invalidate()
}
