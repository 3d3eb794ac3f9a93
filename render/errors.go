package render

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds signals a coordinate outside the grid (caller bug)
	ErrOutOfBounds = errors.New("render: coordinate out of bounds")

	// ErrIOFailure signals that the output rejected a frame; the back buffer is preserved
	ErrIOFailure = errors.New("render: output failure")
)

func outOfBounds(x, y, width, height int) error {
	return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, width, height)
}
