package input

// Kind classifies a decoded key
type Kind uint8

const (
	KeyNone Kind = iota // Zero value, never produced by the decoder
	KeyCharacter        // Printable character, see Key.Rune
	KeyEnter
	KeySpace
	KeyTab
	KeyBackspace
	KeyEscape

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyFunction // F1-F12, see Key.Fn
	KeyCtrl     // Ctrl+letter, see Key.Rune (lowercase letter)
	KeyUnknown  // Unrecognized sequence, see Key.Raw
)

// Key is a decoded logical key, comparable and usable as a map key
type Key struct {
	Kind Kind
	Rune rune   // KeyCharacter, KeyCtrl
	Fn   int    // KeyFunction: 1-12
	Raw  string // KeyUnknown: raw bytes
}

// Fixed keys
var (
	Enter     = Key{Kind: KeyEnter}
	Space     = Key{Kind: KeySpace}
	Tab       = Key{Kind: KeyTab}
	Backspace = Key{Kind: KeyBackspace}
	Escape    = Key{Kind: KeyEscape}
	Up        = Key{Kind: KeyUp}
	Down      = Key{Kind: KeyDown}
	Left      = Key{Kind: KeyLeft}
	Right     = Key{Kind: KeyRight}
)

// Character returns the key for a printable rune
func Character(r rune) Key {
	return Key{Kind: KeyCharacter, Rune: r}
}

// Function returns the key for Fn, n in 1-12
func Function(n int) Key {
	return Key{Kind: KeyFunction, Fn: n}
}

// Ctrl returns the key for Ctrl+letter, letter is normalized to lowercase
func Ctrl(letter rune) Key {
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	return Key{Kind: KeyCtrl, Rune: letter}
}

// Unknown returns the key for an unrecognized byte sequence
func Unknown(raw []byte) Key {
	return Key{Kind: KeyUnknown, Raw: string(raw)}
}
