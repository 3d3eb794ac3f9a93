package input

import (
	"testing"
)

func TestKeyNameRoundTrip(t *testing.T) {
	keys := []Key{
		Enter, Space, Tab, Backspace, Escape, Up, Down, Left, Right,
		Function(1), Function(12), Ctrl('c'), Character('q'), Character('日'),
	}

	for _, k := range keys {
		name := k.String()
		got, err := ParseKey(name)
		if err != nil {
			t.Errorf("ParseKey(%q) failed: %v", name, err)
			continue
		}
		if got != k {
			t.Errorf("Round trip of %q: expected %+v, got %+v", name, k, got)
		}
	}
}

func TestParseKeyAliases(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"ESC", Escape},
		{"return", Enter},
		{"F5", Function(5)},
		{"Ctrl_X", Ctrl('x')},
		{" ", Space},
		{"Q", Character('Q')},
	}

	for _, tt := range tests {
		got, err := ParseKey(tt.name)
		if err != nil {
			t.Errorf("ParseKey(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKey(%q): expected %+v, got %+v", tt.name, tt.want, got)
		}
	}
}

func TestParseKeyInvalid(t *testing.T) {
	for _, name := range []string{"", "f13", "f0", "ctrl_1", "hyper", "\xff"} {
		if _, err := ParseKey(name); err == nil {
			t.Errorf("Expected error for %q", name)
		}
	}
}

func TestKeyStringSpecial(t *testing.T) {
	if s := (Key{}).String(); s != "none" {
		t.Errorf("Expected none, got %q", s)
	}
	if s := Unknown([]byte("\x1b[H")).String(); s != `unknown("\x1b[H")` {
		t.Errorf("Unexpected unknown name %q", s)
	}
}
