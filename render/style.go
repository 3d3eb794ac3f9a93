package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns the config name of the mode
func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// ParseColorMode accepts "truecolor", "24bit", "true" and "256"
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	case "256":
		return ColorMode256, nil
	}
	return ColorMode256, fmt.Errorf("render: unknown color mode %q", s)
}

// ParseColor resolves a color name ("red", "darkgreen") or "#rrggbb" hex value
// "default" and "" map to the terminal default color
func ParseColor(name string) (tcell.Color, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(strings.ToLower(name))
	if c == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("render: unknown color %q", name)
	}
	return c, nil
}

// AppendSGR appends one combined SGR sequence that fully establishes s:
// ESC [ 0 ; attrs ; fg ; bg m
func AppendSGR(dst []byte, s Style, mode ColorMode) []byte {
	dst = append(dst, csi...)
	dst = append(dst, '0')

	if s.Attrs&AttrBold != 0 {
		dst = append(dst, ";1"...)
	}
	if s.Attrs&AttrDim != 0 {
		dst = append(dst, ";2"...)
	}
	if s.Attrs&AttrItalic != 0 {
		dst = append(dst, ";3"...)
	}
	if s.Attrs&AttrUnderline != 0 {
		dst = append(dst, ";4"...)
	}
	if s.Attrs&AttrBlink != 0 {
		dst = append(dst, ";5"...)
	}
	if s.Attrs&AttrReverse != 0 {
		dst = append(dst, ";7"...)
	}

	dst = appendColor(dst, s.Fg, mode, 38)
	dst = appendColor(dst, s.Bg, mode, 48)
	return append(dst, 'm')
}

// appendColor writes ";38;5;N", ";38;2;R;G;B" or nothing for the default color
// base is 38 for foreground, 48 for background
func appendColor(dst []byte, c tcell.Color, mode ColorMode, base int) []byte {
	if c == tcell.ColorDefault || !c.Valid() {
		return dst
	}

	dst = append(dst, ';')
	dst = appendInt(dst, base)

	if c.IsRGB() {
		r, g, b := c.RGB()
		if mode == ColorModeTrueColor {
			dst = append(dst, ";2;"...)
			dst = appendInt(dst, int(r))
			dst = append(dst, ';')
			dst = appendInt(dst, int(g))
			dst = append(dst, ';')
			return appendInt(dst, int(b))
		}
		dst = append(dst, ";5;"...)
		return appendInt(dst, int(RGBTo256(uint8(r), uint8(g), uint8(b))))
	}

	idx := int(c - tcell.ColorValid)
	if idx < 0 || idx > 255 {
		idx = 0
	}
	dst = append(dst, ";5;"...)
	return appendInt(dst, idx)
}

// EncodeStyled wraps text in the SGR sequence for s followed by a reset
func EncodeStyled(text string, s Style, mode ColorMode) string {
	buf := AppendSGR(make([]byte, 0, len(text)+32), s, mode)
	buf = append(buf, text...)
	buf = append(buf, csiSGR0...)
	return string(buf)
}

// Color cube values for 6x6x6 palette (indices 16-231)
var cubeValues = [6]int{0, 95, 135, 175, 215, 255}

// RGBTo256 finds the nearest xterm-256 palette index for an RGB value,
// choosing between the color cube and the grayscale ramp
func RGBTo256(r, g, b uint8) uint8 {
	ri, gi, bi := cubeIndex(int(r)), cubeIndex(int(g)), cubeIndex(int(b))
	cube := 16 + 36*ri + 6*gi + bi
	cubeDist := sq(int(r)-cubeValues[ri]) + sq(int(g)-cubeValues[gi]) + sq(int(b)-cubeValues[bi])

	// Grayscale ramp: 232-255 maps to luminance 8, 18, ..., 238
	gray := (int(r) + int(g) + int(b)) / 3
	grayIdx := 0
	if gray > 8 {
		grayIdx = (gray - 8 + 5) / 10
	}
	if grayIdx > 23 {
		grayIdx = 23
	}
	level := 8 + 10*grayIdx
	grayDist := sq(int(r)-level) + sq(int(g)-level) + sq(int(b)-level)

	if grayDist < cubeDist {
		return uint8(232 + grayIdx)
	}
	return uint8(cube)
}

// cubeIndex maps 0-255 to nearest cube level index 0-5
func cubeIndex(v int) int {
	best := 0
	bestDist := abs(v - cubeValues[0])
	for i := 1; i < len(cubeValues); i++ {
		if d := abs(v - cubeValues[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sq(x int) int { return x * x }
