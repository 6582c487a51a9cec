package systems

import (
	"errors"
	"fmt"
)

// ErrTerrainSize is returned when the height sample count does not match the grid dimensions.
var ErrTerrainSize = errors.New("terrain size mismatch")

// normalEdgeInset keeps bilinear sampling inside a valid 2x2 neighborhood.
const normalEdgeInset = 1.001

// TerrainField is an immutable heightfield with a precomputed unit normal per cell.
// Samples are stored row-major: index z*width + x.
type TerrainField struct {
	heights []float32
	normals []Vec3
	width   int
	height  int
}

// NewTerrainField builds the field and its normal grid from quantized height samples.
func NewTerrainField(samples []uint8, width, height int) (*TerrainField, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrTerrainSize, width, height)
	}
	if width*height != len(samples) {
		return nil, fmt.Errorf("%w: %d samples for %dx%d grid", ErrTerrainSize, len(samples), width, height)
	}

	heights := make([]float32, len(samples))
	for i, s := range samples {
		heights[i] = float32(s)
	}

	t := &TerrainField{
		heights: heights,
		normals: make([]Vec3, len(samples)),
		width:   width,
		height:  height,
	}
	t.computeNormals()
	return t, nil
}

// computeNormals derives each cell normal from an edge-clamped central difference.
// At the borders one side collapses onto the cell itself, so the difference
// becomes one-sided over a single cell.
func (t *TerrainField) computeNormals() {
	for z := 0; z < t.height; z++ {
		zd := max(z-1, 0)
		zu := min(z+1, t.height-1)
		for x := 0; x < t.width; x++ {
			xl := max(x-1, 0)
			xr := min(x+1, t.width-1)

			var dx, dz float32
			if xr != xl {
				dx = (t.heights[z*t.width+xr] - t.heights[z*t.width+xl]) / float32(xr-xl)
			}
			if zu != zd {
				dz = (t.heights[zu*t.width+x] - t.heights[zd*t.width+x]) / float32(zu-zd)
			}

			t.normals[z*t.width+x] = Vec3{-dx, 1, -dz}.Normalize()
		}
	}
}

// Width returns the number of cells along x.
func (t *TerrainField) Width() int { return t.width }

// Height returns the number of cells along z.
func (t *TerrainField) Height() int { return t.height }

// HeightAt returns the elevation of cell (x, z). Coordinates must be in range.
func (t *TerrainField) HeightAt(x, z int) float32 {
	return t.heights[z*t.width+x]
}

// NormalAt returns the precomputed normal of cell (x, z). Coordinates must be in range.
func (t *TerrainField) NormalAt(x, z int) Vec3 {
	return t.normals[z*t.width+x]
}

// SampleHeight returns the elevation of the cell containing (x, z).
// Coordinates outside the grid are clamped to the nearest edge cell.
func (t *TerrainField) SampleHeight(x, z float32) float32 {
	x = clampFloat(x, 0, float32(t.width-1))
	z = clampFloat(z, 0, float32(t.height-1))
	return t.heights[int(z)*t.width+int(x)]
}

// SampleNormal bilinearly interpolates the four normals around (x, z)
// and renormalizes the result.
func (t *TerrainField) SampleNormal(x, z float32) Vec3 {
	x = clampFloat(x, 0, max(float32(t.width)-normalEdgeInset, 0))
	z = clampFloat(z, 0, max(float32(t.height)-normalEdgeInset, 0))

	x0 := int(floorf(x))
	z0 := int(floorf(z))
	x1 := min(x0+1, t.width-1)
	z1 := min(z0+1, t.height-1)
	fx := x - float32(x0)
	fz := z - float32(z0)

	n00 := t.NormalAt(x0, z0)
	n10 := t.NormalAt(x1, z0)
	n01 := t.NormalAt(x0, z1)
	n11 := t.NormalAt(x1, z1)

	top := n00.Scale(1 - fx).Add(n10.Scale(fx))
	bottom := n01.Scale(1 - fx).Add(n11.Scale(fx))
	return top.Scale(1 - fz).Add(bottom.Scale(fz)).Normalize()
}
