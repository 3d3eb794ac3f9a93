package render

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func collect(fb *FrameBuffer) []Change {
	var out []Change
	for ch := range fb.Diff() {
		out = append(out, ch)
	}
	return out
}

func committed(width, height int) *FrameBuffer {
	fb := NewFrameBuffer(width, height)
	for range fb.Diff() {
	}
	fb.Commit()
	return fb
}

func TestFrameBufferWriteTruncatesAtRightEdge(t *testing.T) {
	fb := committed(10, 3)

	n, err := fb.Write(9, 1, "AB", StyleDefault)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 column written, got %d", n)
	}

	c, _ := fb.Back().Get(9, 1)
	if c.Glyph != "A" {
		t.Errorf("Expected 'A' at right edge, got %q", c.Glyph)
	}
	// No wraparound into the next row
	next, _ := fb.Back().Get(0, 2)
	if next != BlankCell {
		t.Errorf("Expected next row untouched, got %+v", next)
	}
}

func TestFrameBufferWriteOutOfBounds(t *testing.T) {
	fb := committed(10, 3)

	if _, err := fb.Write(0, 3, "x", StyleDefault); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds for row past bottom, got %v", err)
	}
	if _, err := fb.Write(-1, 0, "x", StyleDefault); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds for negative x, got %v", err)
	}
}

func TestFrameBufferDiffRowMajor(t *testing.T) {
	fb := committed(5, 3)

	fb.Write(3, 2, "z", StyleDefault)
	fb.Write(1, 0, "ab", StyleDefault)
	fb.Write(4, 1, "y", StyleDefault)

	got := collect(fb)
	want := []struct {
		x, y  int
		glyph string
	}{
		{1, 0, "a"}, {2, 0, "b"}, {4, 1, "y"}, {3, 2, "z"},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d changes, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].X != w.x || got[i].Y != w.y || got[i].Cell.Glyph != w.glyph {
			t.Errorf("Change %d: expected (%d,%d,%q), got (%d,%d,%q)",
				i, w.x, w.y, w.glyph, got[i].X, got[i].Y, got[i].Cell.Glyph)
		}
	}
}

func TestFrameBufferDiffSingleUse(t *testing.T) {
	fb := committed(4, 2)
	fb.Write(0, 0, "x", StyleDefault)

	seq := fb.Diff()
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != 1 {
		t.Errorf("Expected 1 change on first pass, got %d", first)
	}
	if second != 0 {
		t.Errorf("Expected exhausted sequence on second pass, got %d", second)
	}
}

func TestFrameBufferCommitEmptiesDiff(t *testing.T) {
	fb := committed(4, 2)
	fb.Write(0, 0, "xy", StyleDefault)
	collect(fb)
	fb.Commit()

	if got := collect(fb); len(got) != 0 {
		t.Errorf("Expected empty diff after commit, got %+v", got)
	}

	// Same content rewritten is not a change
	fb.ClearBack()
	fb.Write(0, 0, "xy", StyleDefault)
	if got := collect(fb); len(got) != 0 {
		t.Errorf("Expected empty diff for identical frame, got %+v", got)
	}
}

func TestFrameBufferClearBackKeepsFront(t *testing.T) {
	fb := committed(4, 2)
	fb.Write(0, 0, "q", StyleDefault)
	collect(fb)
	fb.Commit()

	fb.ClearBack()
	if c, _ := fb.Front().Get(0, 0); c.Glyph != "q" {
		t.Errorf("Expected front to keep 'q', got %q", c.Glyph)
	}
	got := collect(fb)
	if len(got) != 1 || got[0].Cell != BlankCell {
		t.Errorf("Expected one blank change, got %+v", got)
	}
}

func TestFrameBufferResizeForcesFullRedraw(t *testing.T) {
	fb := committed(4, 2)
	fb.Resize(6, 3)

	if fb.Width() != 6 || fb.Height() != 3 {
		t.Fatalf("Expected 6x3 after resize, got %dx%d", fb.Width(), fb.Height())
	}
	// Front and back are both blank, yet every cell is reported
	if got := collect(fb); len(got) != 18 {
		t.Errorf("Expected 18 changes after resize, got %d", len(got))
	}
	fb.Commit()
	if got := collect(fb); len(got) != 0 {
		t.Errorf("Expected empty diff after commit, got %d", len(got))
	}
}

func TestFrameBufferInvalidate(t *testing.T) {
	fb := committed(3, 2)
	fb.Invalidate()
	if !fb.FullRedrawPending() {
		t.Fatal("Expected full redraw pending")
	}
	if got := collect(fb); len(got) != 6 {
		t.Errorf("Expected 6 changes, got %d", len(got))
	}
}

func TestFrameBufferWideGlyph(t *testing.T) {
	fb := committed(6, 1)
	style := Style{Fg: tcell.ColorGreen}

	n, err := fb.WriteGlyphs(1, 0, []Glyph{{Text: "ア", Width: 2}, {Text: "b", Width: 1}}, style)
	if err != nil {
		t.Fatalf("WriteGlyphs failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 columns, got %d", n)
	}

	lead, _ := fb.Back().Get(1, 0)
	cont, _ := fb.Back().Get(2, 0)
	after, _ := fb.Back().Get(3, 0)
	if lead.Glyph != "ア" || lead.Width != 2 {
		t.Errorf("Unexpected lead cell %+v", lead)
	}
	if !cont.IsContinuation() {
		t.Errorf("Expected continuation at column 2, got %+v", cont)
	}
	if after.Glyph != "b" {
		t.Errorf("Expected 'b' at column 3, got %+v", after)
	}
}

func TestFrameBufferWideGlyphOverwriteReleasesClaim(t *testing.T) {
	tests := []struct {
		name     string
		writeX   int
		blankX   int
		writtenX int
	}{
		{"overwrite continuation blanks lead", 2, 1, 2},
		{"overwrite lead blanks continuation", 1, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := committed(6, 1)
			fb.WriteGlyphs(1, 0, []Glyph{{Text: "ア", Width: 2}}, StyleDefault)
			fb.Write(tt.writeX, 0, "x", StyleDefault)

			if c, _ := fb.Back().Get(tt.blankX, 0); c != BlankCell {
				t.Errorf("Expected blank at %d, got %+v", tt.blankX, c)
			}
			if c, _ := fb.Back().Get(tt.writtenX, 0); c.Glyph != "x" || c.Width != 1 {
				t.Errorf("Expected 'x' at %d, got %+v", tt.writtenX, c)
			}
		})
	}
}

func TestFrameBufferWideGlyphDoesNotSplitAtEdge(t *testing.T) {
	fb := committed(4, 1)

	n, _ := fb.WriteGlyphs(2, 0, Repeat("ア", 2, 2), StyleDefault)
	if n != 2 {
		t.Errorf("Expected only one wide glyph (2 columns), got %d", n)
	}
	if c, _ := fb.Back().Get(3, 0); !c.IsContinuation() {
		t.Errorf("Expected continuation in last column, got %+v", c)
	}

	n, _ = fb.WriteGlyphs(3, 0, Repeat("イ", 2, 1), StyleDefault)
	if n != 0 {
		t.Errorf("Expected wide glyph at last column to be dropped, got %d", n)
	}
}

func TestFrameBufferControlRunesRenderBlank(t *testing.T) {
	fb := committed(4, 1)
	fb.Write(0, 0, "a\nb", StyleDefault)
	if c, _ := fb.Back().Get(1, 0); c.Glyph != " " {
		t.Errorf("Expected control rune rendered as blank, got %q", c.Glyph)
	}
}

func TestMeasure(t *testing.T) {
	glyphs := Measure("aア" + "e\u0301")
	if len(glyphs) != 3 {
		t.Fatalf("Expected 3 glyphs, got %d: %+v", len(glyphs), glyphs)
	}
	if glyphs[0].Width != 1 || glyphs[1].Width != 2 {
		t.Errorf("Unexpected widths %+v", glyphs)
	}
	if glyphs[2].Text != "e\u0301" || glyphs[2].Width != 1 {
		t.Errorf("Expected combining mark attached to 'e', got %+v", glyphs[2])
	}
}
