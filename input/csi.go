// @lixen: #focus{sys[input,keys]}
package input

// csiSequence maps the bytes following ESC [ to a key
type csiSequence struct {
	seq string
	key Key
}

// Known CSI sequences, modifier variants collapse to the base key
var csiSequences = []csiSequence{
	// Arrow keys
	{"A", Up},
	{"B", Down},
	{"C", Right},
	{"D", Left},

	// Arrow keys with modifiers (xterm style: ESC [ 1 ; mod X)
	{"1;2A", Up},
	{"1;2B", Down},
	{"1;2C", Right},
	{"1;2D", Left},
	{"1;3A", Up},
	{"1;3B", Down},
	{"1;3C", Right},
	{"1;3D", Left},
	{"1;5A", Up},
	{"1;5B", Down},
	{"1;5C", Right},
	{"1;5D", Left},

	// Function keys (xterm)
	{"11~", Function(1)},
	{"12~", Function(2)},
	{"13~", Function(3)},
	{"14~", Function(4)},
	{"15~", Function(5)},
	{"17~", Function(6)},
	{"18~", Function(7)},
	{"19~", Function(8)},
	{"20~", Function(9)},
	{"21~", Function(10)},
	{"23~", Function(11)},
	{"24~", Function(12)},

	// F1-F4 sent as CSI finals
	{"P", Function(1)},
	{"Q", Function(2)},
	{"R", Function(3)},
	{"S", Function(4)},

	// Linux console
	{"[A", Function(1)},
	{"[B", Function(2)},
	{"[C", Function(3)},
	{"[D", Function(4)},
	{"[E", Function(5)},
}

// SS3 finals (ESC O X), decoded only when enabled on the Decoder
var ss3Sequences = []csiSequence{
	{"A", Up},
	{"B", Down},
	{"C", Right},
	{"D", Left},
	{"P", Function(1)},
	{"Q", Function(2)},
	{"R", Function(3)},
	{"S", Function(4)},
}

var (
	csiMap = buildSequenceMap(csiSequences)
	ss3Map = buildSequenceMap(ss3Sequences)
)

func buildSequenceMap(seqs []csiSequence) map[string]Key {
	m := make(map[string]Key, len(seqs))
	for _, s := range seqs {
		m[s.seq] = s.key
	}
	return m
}

// lookupCSI resolves a complete sequence starting with ESC [
// The string([]byte) conversion inline in map access does not allocate
func lookupCSI(seq []byte) Key {
	if len(seq) > 2 {
		if k, ok := csiMap[string(seq[2:])]; ok {
			return k
		}
	}
	return Unknown(seq)
}

// lookupSS3 resolves a complete ESC O X sequence
func lookupSS3(seq []byte) Key {
	if len(seq) == 3 {
		if k, ok := ss3Map[string(seq[2:])]; ok {
			return k
		}
	}
	return Unknown(seq)
}
