package systems

import (
	"errors"
	"fmt"
)

// FlatStride is the number of floats per grain in a FlatGrains buffer: x, y, vx, vy.
const FlatStride = 4

// ErrFlatBuffer is returned when a flat buffer is not a whole number of grains.
var ErrFlatBuffer = errors.New("flat grain buffer length")

// FlatGrains is the 2D sibling of the terrain kernel: grains drift in a
// width x height rectangle with mirror walls on all four sides and damping.
// There is no gravity, terrain, or grain-grain contact.
type FlatGrains struct {
	buf     []float32
	width   float32
	height  float32
	damping float32
}

// NewFlatGrains wraps an interleaved (x, y, vx, vy) buffer. The buffer is
// mutated in place by Next.
func NewFlatGrains(buf []float32, damping, width, height float32) (*FlatGrains, error) {
	if len(buf)%FlatStride != 0 {
		return nil, fmt.Errorf("%w: %d is not a multiple of %d", ErrFlatBuffer, len(buf), FlatStride)
	}
	return &FlatGrains{buf: buf, width: width, height: height, damping: damping}, nil
}

// Len returns the number of grains.
func (f *FlatGrains) Len() int {
	return len(f.buf) / FlatStride
}

// Buffer returns the underlying interleaved buffer.
func (f *FlatGrains) Buffer() []float32 {
	return f.buf
}

// Next advances every grain by one tick.
func (f *FlatGrains) Next() {
	for b := 0; b+FlatStride <= len(f.buf); b += FlatStride {
		g := f.buf[b : b+FlatStride : b+FlatStride]
		g[0] += g[2]
		g[1] += g[3]

		reflectAxis(&g[0], &g[2], f.width)
		reflectAxis(&g[1], &g[3], f.height)

		g[2] *= f.damping
		g[3] *= f.damping
	}
}
