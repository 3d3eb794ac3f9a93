// @lixen: #interact{state[pending,deadline],trigger[key]}
package input

import (
	"time"
	"unicode/utf8"
)

// DefaultEscapeTimeout is the wait after ESC before it resolves as a standalone key
const DefaultEscapeTimeout = 50 * time.Millisecond

// maxCSILen bounds a pending CSI sequence, longer input resolves to Unknown
const maxCSILen = 16

type state uint8

const (
	stateIdle state = iota
	stateEscape
	stateCSI
	stateSS3
	stateUTF8
)

// Decoder turns a byte stream into keys
// Not safe for concurrent use; a Reader owns one exclusively
type Decoder struct {
	timeout time.Duration
	ss3     bool // Decode ESC O <final> as SS3 instead of Escape + 'O'

	state    state
	pending  []byte // Unresolved bytes, including the leading ESC
	need     int    // Expected UTF-8 sequence length in stateUTF8
	deadline time.Time
}

// NewDecoder creates a decoder, non-positive timeout selects DefaultEscapeTimeout
func NewDecoder(timeout time.Duration) *Decoder {
	if timeout <= 0 {
		timeout = DefaultEscapeTimeout
	}
	return &Decoder{
		timeout: timeout,
		pending: make([]byte, 0, maxCSILen),
	}
}

// Timeout returns the escape disambiguation timeout
func (d *Decoder) Timeout() time.Duration {
	return d.timeout
}

// SetSS3 enables SS3 decoding (ESC O P..S for F1-F4, ESC O A..D for arrows in
// application cursor mode). Off by default: ESC O then resolves as Escape followed by 'O'
func (d *Decoder) SetSS3(on bool) {
	d.ss3 = on
}

// Pending reports whether a partial sequence awaits more bytes or its deadline
func (d *Decoder) Pending() bool {
	return d.state != stateIdle
}

// Deadline returns when the pending sequence resolves on its own
func (d *Decoder) Deadline() (time.Time, bool) {
	if d.state == stateIdle {
		return time.Time{}, false
	}
	return d.deadline, true
}

// Reset drops any pending sequence
func (d *Decoder) Reset() {
	d.state = stateIdle
	d.pending = d.pending[:0]
	d.need = 0
	d.deadline = time.Time{}
}

// Expire resolves the pending sequence when now has reached its deadline
// A lone ESC becomes Escape, any partial CSI or UTF-8 sequence becomes Unknown
func (d *Decoder) Expire(now time.Time) (Key, bool) {
	if d.state == stateIdle || now.Before(d.deadline) {
		return Key{}, false
	}
	return d.flush(), true
}

// Feed decodes data received at now and returns every key it resolves, in order
// An expired pending sequence resolves before the new bytes are considered
func (d *Decoder) Feed(data []byte, now time.Time) []Key {
	var keys []Key
	if k, ok := d.Expire(now); ok {
		keys = append(keys, k)
	}

	for i := 0; i < len(data); {
		k, emit, consumed := d.step(data[i], now)
		if emit {
			keys = append(keys, k)
		}
		if consumed {
			i++
		}
	}
	return keys
}

// step advances the machine by one byte
// consumed is false when the byte must be reprocessed from the new state
func (d *Decoder) step(b byte, now time.Time) (k Key, emit, consumed bool) {
	switch d.state {
	case stateEscape:
		if b == '[' {
			d.extend(b, now)
			d.state = stateCSI
			return Key{}, false, true
		}
		if b == 'O' && d.ss3 {
			d.extend(b, now)
			d.state = stateSS3
			return Key{}, false, true
		}
		// Lone ESC, byte belongs to the next key
		d.Reset()
		return Escape, true, false

	case stateCSI:
		if b < 0x20 || b > 0x7e {
			return d.flush(), true, false
		}
		d.extend(b, now)
		if b == '[' && len(d.pending) == 3 {
			// Linux console function keys: ESC [ [ A..E
			return Key{}, false, true
		}
		if b >= 0x40 {
			// Final byte
			k := lookupCSI(d.pending)
			d.Reset()
			return k, true, true
		}
		if len(d.pending) >= maxCSILen {
			return d.flush(), true, true
		}
		return Key{}, false, true

	case stateSS3:
		if b < 0x20 || b > 0x7e {
			return d.flush(), true, false
		}
		d.extend(b, now)
		k := lookupSS3(d.pending)
		d.Reset()
		return k, true, true

	case stateUTF8:
		if b&0xc0 != 0x80 {
			return d.flush(), true, false
		}
		d.extend(b, now)
		if len(d.pending) < d.need {
			return Key{}, false, true
		}
		r, size := utf8.DecodeRune(d.pending)
		if r == utf8.RuneError && size <= 1 {
			return d.flush(), true, true
		}
		d.Reset()
		return Character(r), true, true
	}

	return d.idle(b, now)
}

// idle resolves a byte with no pending sequence
func (d *Decoder) idle(b byte, now time.Time) (Key, bool, bool) {
	switch {
	case b == 0x1b:
		d.begin(stateEscape, b, now)
		return Key{}, false, true
	case b == '\r' || b == '\n':
		return Enter, true, true
	case b == ' ':
		return Space, true, true
	case b == '\t':
		return Tab, true, true
	case b == 0x08 || b == 0x7f:
		return Backspace, true, true
	case b > 0x20 && b < 0x7f:
		return Character(rune(b)), true, true
	case b >= 0x01 && b <= 0x1a:
		return Ctrl(rune('a' + b - 1)), true, true
	case b < 0x20:
		return Unknown([]byte{b}), true, true
	}

	// UTF-8 lead byte
	if n := utf8SeqLen(b); n > 1 {
		d.begin(stateUTF8, b, now)
		d.need = n
		return Key{}, false, true
	}
	return Unknown([]byte{b}), true, true
}

// begin enters a pending state with b as the first byte
func (d *Decoder) begin(s state, b byte, now time.Time) {
	d.state = s
	d.pending = append(d.pending[:0], b)
	d.deadline = now.Add(d.timeout)
}

// extend appends a byte to the pending sequence and pushes the deadline out
func (d *Decoder) extend(b byte, now time.Time) {
	d.pending = append(d.pending, b)
	d.deadline = now.Add(d.timeout)
}

// flush resolves whatever is pending and returns to idle
func (d *Decoder) flush() Key {
	var k Key
	if d.state == stateEscape {
		k = Escape
	} else {
		k = Unknown(d.pending)
	}
	d.Reset()
	return k
}

// utf8SeqLen returns expected UTF-8 sequence length from start byte, 0 if invalid
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b >= 0xc2 && b <= 0xdf:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b >= 0xf0 && b <= 0xf4:
		return 4
	}
	return 0
}
