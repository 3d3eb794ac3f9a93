// @lixen: #focus{sys[render,ansi]}
package render

import (
	"strconv"
)

// Pre-allocated ANSI sequence fragments
var (
	csi     = []byte("\x1b[")
	csiSGR0 = []byte("\x1b[0m")
)

// appendInt writes a non-negative decimal without intermediate allocation
func appendInt(dst []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(dst, byte(n)+'0')
	}
	return strconv.AppendInt(dst, int64(n), 10)
}

// appendCursorPos writes CUP for 0-indexed (x, y): ESC [ row ; col H
func appendCursorPos(dst []byte, x, y int) []byte {
	dst = append(dst, csi...)
	dst = appendInt(dst, y+1)
	dst = append(dst, ';')
	dst = appendInt(dst, x+1)
	return append(dst, 'H')
}

// appendCursorForward writes CUF n, non-destructive unlike overwriting with spaces
func appendCursorForward(dst []byte, n int) []byte {
	if n <= 0 {
		return dst
	}
	dst = append(dst, csi...)
	if n > 1 {
		dst = appendInt(dst, n)
	}
	return append(dst, 'C')
}
