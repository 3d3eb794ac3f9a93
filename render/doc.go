// @lixen: #focus{sys[render,output]}
// Package render implements a double-buffered cell grid renderer for ANSI terminals.
//
// Features:
//   - Front/back CellGrid pair with row-major diffing
//   - Cursor bookkeeping that suppresses redundant positioning sequences
//   - Same-row runs flushed as a single write per frame
//   - Caller-declared glyph widths for wide characters
//   - Truecolor and 256-color SGR encoding of tcell colors
//
// The package performs no I/O of its own: a Renderer writes frames through an Output,
// which a terminal session or a test sink implements.
package render
