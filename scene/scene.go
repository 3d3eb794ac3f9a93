// @lixen: #focus{sys[scene,bench]}
package scene

import (
	"github.com/lixenwraith/cellterm/render"
)

// Canvas is the surface scenes compose into, satisfied by *render.Renderer
type Canvas interface {
	Size() (width, height int)
	Clear()
	Write(x, y int, text string, style render.Style) error
	WriteGlyphs(x, y int, glyphs []render.Glyph, style render.Style) error
}

// Scene draws one benchmark frame
type Scene interface {
	Name() string
	Draw(c Canvas, frame int)
}
