package render

import (
	"github.com/mattn/go-runewidth"
)

// Measure splits text into glyphs with widths inferred by go-runewidth
// Zero-width runes (combining marks) attach to the preceding glyph
// Width stays caller-declared: the renderer never calls this on its own
func Measure(text string) []Glyph {
	glyphs := make([]Glyph, 0, len(text))
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 && len(glyphs) > 0 {
			glyphs[len(glyphs)-1].Text += string(r)
			continue
		}
		if w < 1 {
			w = 1
		}
		glyphs = append(glyphs, Glyph{Text: glyphText(r), Width: w})
	}
	return glyphs
}

// Repeat returns n copies of a glyph with the given declared width
func Repeat(text string, width, n int) []Glyph {
	if n <= 0 {
		return nil
	}
	glyphs := make([]Glyph, n)
	for i := range glyphs {
		glyphs[i] = Glyph{Text: text, Width: width}
	}
	return glyphs
}
