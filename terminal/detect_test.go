package terminal

import (
	"testing"

	"github.com/lixenwraith/cellterm/render"
)

func clearColorEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"COLORTERM", "KITTY_WINDOW_ID", "KONSOLE_VERSION", "ITERM_SESSION_ID", "ALACRITTY_WINDOW_ID", "WEZTERM_PANE", "TERM"} {
		t.Setenv(k, "")
	}
}

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want render.ColorMode
	}{
		{"plain xterm", map[string]string{"TERM": "xterm-256color"}, render.ColorMode256},
		{"colorterm", map[string]string{"COLORTERM": "truecolor"}, render.ColorModeTrueColor},
		{"kitty", map[string]string{"KITTY_WINDOW_ID": "1"}, render.ColorModeTrueColor},
		{"direct term", map[string]string{"TERM": "xterm-direct"}, render.ColorModeTrueColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearColorEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := DetectColorMode(); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestResolveColorMode(t *testing.T) {
	clearColorEnv(t)
	t.Setenv("COLORTERM", "24bit")

	if m, err := ResolveColorMode("auto"); err != nil || m != render.ColorModeTrueColor {
		t.Errorf("Expected detected truecolor, got %v err=%v", m, err)
	}
	if m, err := ResolveColorMode("256"); err != nil || m != render.ColorMode256 {
		t.Errorf("Expected explicit 256, got %v err=%v", m, err)
	}
	if _, err := ResolveColorMode("cga"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}

func TestNewBackendNames(t *testing.T) {
	for _, name := range []string{"", BackendStdio, BackendTty} {
		if _, err := NewBackend(name); err != nil {
			t.Errorf("NewBackend(%q) failed: %v", name, err)
		}
	}
	if _, err := NewBackend("serial"); err == nil {
		t.Error("Expected error for unknown backend")
	}
}
