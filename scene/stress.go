package scene

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cellterm/render"
)

// Stress returns the benchmark scenes in run order
func Stress(rng *rand.Rand) []Scene {
	return []Scene{
		&massiveUpdates{},
		&randomNoise{rng: rng},
		&movingObjects{rng: rng},
		&sineWave{},
		&scrollingText{},
		&matrixRain{rng: rng},
		&rapidClear{},
	}
}

var labelStyle = render.StyleDefault.With(render.AttrBold | render.AttrReverse)

// label overlays the frame counter; writes outside the grid are clipped
func label(c Canvas, x, y int, text string) {
	c.Write(x, y, text, labelStyle)
}

// rgb converts a colorful color to a tcell RGB color
func rgb(col colorful.Color) tcell.Color {
	r, g, b := col.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// massiveUpdates fills every cell each frame, cycling glyph and color
type massiveUpdates struct{}

var (
	shadeGlyphs = []string{"░", "▒", "▓", "█"}
	shadeColors = []tcell.Color{tcell.ColorRed, tcell.ColorGreen, tcell.ColorBlue}
)

func (s *massiveUpdates) Name() string { return "Massive Updates" }

func (s *massiveUpdates) Draw(c Canvas, frame int) {
	c.Clear()
	w, h := c.Size()
	row := strings.Repeat(shadeGlyphs[frame%len(shadeGlyphs)], w)
	style := render.StyleDefault.Foreground(shadeColors[frame%len(shadeColors)])
	for y := range h {
		c.Write(0, y, row, style)
	}
	label(c, 5, 5, fmt.Sprintf("Frame: %d - FULL SCREEN UPDATE", frame))
}

// randomNoise scatters random glyphs
type randomNoise struct {
	rng *rand.Rand
}

const (
	noiseGlyphs = "█▓▒░#@%&*+=~"
	noiseCount  = 500
)

var noiseRunes = []rune(noiseGlyphs)

func (s *randomNoise) Name() string { return "Random Noise" }

func (s *randomNoise) Draw(c Canvas, frame int) {
	c.Clear()
	w, h := c.Size()
	if w > 0 && h > 0 {
		for range noiseCount {
			r := noiseRunes[s.rng.IntN(len(noiseRunes))]
			c.Write(s.rng.IntN(w), s.rng.IntN(h), string(r), render.StyleDefault)
		}
	}
	label(c, 5, 5, fmt.Sprintf("Frame: %d", frame))
}

// movingObjects bounces glyphs off the edges
type movingObjects struct {
	rng     *rand.Rand
	objects []object
	w, h    int
}

type object struct {
	x, y   int
	vx, vy int
	glyph  string
	color  tcell.Color
}

const objectCount = 50

var objectGlyphs = []string{"●", "■", "◆", "▲", "▼"}

func (s *movingObjects) Name() string { return "Moving Objects" }

func (s *movingObjects) reset(w, h int) {
	s.w, s.h = w, h
	s.objects = s.objects[:0]
	for range objectCount {
		s.objects = append(s.objects, object{
			x:     s.rng.IntN(max(w-1, 1)),
			y:     s.rng.IntN(max(h-1, 1)),
			vx:    []int{-1, 1}[s.rng.IntN(2)],
			vy:    []int{-1, 1}[s.rng.IntN(2)],
			glyph: objectGlyphs[s.rng.IntN(len(objectGlyphs))],
			color: tcell.PaletteColor(1 + s.rng.IntN(14)),
		})
	}
}

func (s *movingObjects) Draw(c Canvas, frame int) {
	c.Clear()
	w, h := c.Size()
	if w != s.w || h != s.h || s.objects == nil {
		s.reset(w, h)
	}
	maxX, maxY := w-2, h-2

	for i := range s.objects {
		o := &s.objects[i]
		o.x += o.vx
		o.y += o.vy
		if o.x <= 0 || o.x >= maxX {
			o.vx = -o.vx
		}
		if o.y <= 0 || o.y >= maxY {
			o.vy = -o.vy
		}
		o.x = min(max(o.x, 0), max(maxX, 0))
		o.y = min(max(o.y, 0), max(maxY, 0))
		c.Write(o.x, o.y, o.glyph, render.StyleDefault.Foreground(o.color))
	}
	label(c, 5, 5, fmt.Sprintf("Frame: %d - %d objects", frame, objectCount))
}

// sineWave draws phase-shifted sine bands with an HSV gradient across the width
type sineWave struct{}

func (s *sineWave) Name() string { return "Sine Wave Animation" }

func (s *sineWave) Draw(c Canvas, frame int) {
	c.Clear()
	w, h := c.Size()
	phase := float64(frame) * 0.1

	for x := range w {
		hue := math.Mod(float64(x)*360/float64(max(w, 1))+float64(frame)*4, 360)
		style := render.StyleDefault.Foreground(rgb(colorful.Hsv(hue, 0.8, 1)))
		dy := int(5 * math.Sin(float64(x)*0.1+phase))
		for yOff := 0; yOff < h; yOff += 2 {
			if y := yOff + dy; y >= 0 && y < h {
				c.Write(x, y, "█", style)
			}
		}
	}
	label(c, 5, 2, fmt.Sprintf("Frame: %d", frame))
}

// scrollingText rotates a text wall at a different offset per row
type scrollingText struct{}

var scrollText = strings.Repeat("THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG ", 10)

func (s *scrollingText) Name() string { return "Scrolling Text" }

func (s *scrollingText) Draw(c Canvas, frame int) {
	c.Clear()
	w, h := c.Size()
	n := len(scrollText)
	for y := range h {
		off := (frame*2 + y*3) % n
		line := scrollText[off:] + scrollText[:off]
		if len(line) > w {
			line = line[:w]
		}
		c.Write(0, y, line, render.StyleDefault)
	}
	label(c, 5, 5, fmt.Sprintf("[Frame: %d]", frame))
}

// matrixRain drops trails of digits and wide katakana down two-column lanes
type matrixRain struct {
	rng     *rand.Rand
	columns []rainColumn
	w       int
}

type rainColumn struct {
	x, y   int
	speed  int
	length int
}

// Katakana are declared double-width; digits are single-width
var rainGlyphs = func() []render.Glyph {
	glyphs := []render.Glyph{{Text: "0", Width: 1}, {Text: "1", Width: 1}}
	for _, r := range "アイウエオカキクケコサシスセソ" {
		glyphs = append(glyphs, render.Glyph{Text: string(r), Width: 2})
	}
	return glyphs
}()

var (
	rainHead = colorful.Color{R: 0.85, G: 1, B: 0.85}
	rainTail = colorful.Color{R: 0, G: 0.25, B: 0}
)

func (s *matrixRain) Name() string { return "Matrix Rain" }

func (s *matrixRain) Draw(c Canvas, frame int) {
	c.Clear()
	w, h := c.Size()
	if w != s.w {
		s.w = w
		s.columns = s.columns[:0]
		for x := 0; x < w; x += 2 {
			s.columns = append(s.columns, rainColumn{
				x:      x,
				y:      -s.rng.IntN(h + 1),
				speed:  1 + s.rng.IntN(3),
				length: 5 + s.rng.IntN(16),
			})
		}
	}

	for i := range s.columns {
		col := &s.columns[i]
		for j := range col.length {
			y := col.y - j
			if y < 0 || y >= h {
				continue
			}
			t := float64(j) / float64(col.length)
			style := render.StyleDefault.Foreground(rgb(rainHead.BlendLab(rainTail, t)))
			g := rainGlyphs[s.rng.IntN(len(rainGlyphs))]
			c.WriteGlyphs(col.x, y, []render.Glyph{g}, style)
		}

		col.y += col.speed
		if col.y > h+col.length {
			col.y = -col.length
			col.speed = 1 + s.rng.IntN(3)
		}
	}
	label(c, 5, 5, fmt.Sprintf("Frame: %d", frame))
}

// rapidClear alternates which rows are filled every frame
type rapidClear struct{}

func (s *rapidClear) Name() string { return "Rapid Clear/Redraw" }

func (s *rapidClear) Draw(c Canvas, frame int) {
	c.Clear()
	w, h := c.Size()
	row := strings.Repeat("█", w)
	for y := range h {
		if y%2 == frame%2 {
			c.Write(0, y, row, render.StyleDefault)
		}
	}
	label(c, 5, 5, fmt.Sprintf("Frame: %d - RAPID REDRAW", frame))
}
