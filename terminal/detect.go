package terminal

import (
	"os"
	"strings"

	"github.com/lixenwraith/cellterm/render"
)

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() render.ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return render.ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return render.ColorModeTrueColor
	}

	term := os.Getenv("TERM")
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return render.ColorModeTrueColor
	}

	return render.ColorMode256
}

// ResolveColorMode maps a config value to a mode, "auto" and "" detect from the environment
func ResolveColorMode(name string) (render.ColorMode, error) {
	if name == "" || strings.EqualFold(name, "auto") {
		return DetectColorMode(), nil
	}
	return render.ParseColorMode(name)
}
