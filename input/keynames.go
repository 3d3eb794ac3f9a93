package input

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// kindToName maps fixed keys to canonical config string names
var kindToName = map[Kind]string{
	KeyEnter:     "enter",
	KeySpace:     "space",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyEscape:    "escape",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
}

// nameToKey is the reverse lookup, built from kindToName
var nameToKey map[string]Key

func init() {
	nameToKey = make(map[string]Key, len(kindToName)+4)
	for k, v := range kindToName {
		nameToKey[v] = Key{Kind: k}
	}
	// Aliases
	nameToKey["esc"] = Escape
	nameToKey["return"] = Enter
}

// String returns the canonical name used in config key maps
func (k Key) String() string {
	if name, ok := kindToName[k.Kind]; ok {
		return name
	}
	switch k.Kind {
	case KeyCharacter:
		return string(k.Rune)
	case KeyFunction:
		return "f" + strconv.Itoa(k.Fn)
	case KeyCtrl:
		return "ctrl_" + string(k.Rune)
	case KeyUnknown:
		return fmt.Sprintf("unknown(%q)", k.Raw)
	}
	return "none"
}

// ParseKey resolves a config name: "up", "f5", "ctrl_c", or a single character like "q"
func ParseKey(name string) (Key, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		switch r {
		case ' ':
			return Space, nil
		case utf8.RuneError:
			return Key{}, fmt.Errorf("input: invalid key name %q", name)
		}
		return Character(r), nil
	}

	lower := strings.ToLower(name)
	if k, ok := nameToKey[lower]; ok {
		return k, nil
	}

	if rest, ok := strings.CutPrefix(lower, "ctrl_"); ok && len(rest) == 1 && rest[0] >= 'a' && rest[0] <= 'z' {
		return Ctrl(rune(rest[0])), nil
	}

	if rest, ok := strings.CutPrefix(lower, "f"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 && n <= 12 {
			return Function(n), nil
		}
	}

	return Key{}, fmt.Errorf("input: unknown key name %q", name)
}
