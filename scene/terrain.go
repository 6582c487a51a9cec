// Package scene builds the inputs of a run: terrain elevation samples and
// the initial grain buffers.
package scene

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"math"
	"os"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/sandy/config"
)

// ErrEmptyImage is returned when an elevation image has no pixels.
var ErrEmptyImage = errors.New("empty elevation image")

// TerrainParams controls procedural elevation.
type TerrainParams struct {
	Scale      float64 // features across the whole world
	Octaves    int
	Lacunarity float64
	Gain       float64
	MaxHeight  uint8
	Steps      int // quantization levels, 0 or 1 keeps every integer height
}

// TerrainParamsFromConfig maps the terrain section of a loaded config.
func TerrainParamsFromConfig(cfg *config.Config) TerrainParams {
	return TerrainParams{
		Scale:      cfg.Terrain.Scale,
		Octaves:    cfg.Terrain.Octaves,
		Lacunarity: cfg.Terrain.Lacunarity,
		Gain:       cfg.Terrain.Gain,
		MaxHeight:  uint8(cfg.Terrain.MaxHeight),
		Steps:      cfg.Terrain.Steps,
	}
}

// GenerateHeights fills a width*height row-major grid with fractal simplex
// noise quantized into p.Steps terraces. The same seed yields the same grid.
func GenerateHeights(seed int64, width, height int, p TerrainParams) []uint8 {
	noise := opensimplex.NewNormalized(seed)
	octaves := max(p.Octaves, 1)

	heights := make([]uint8, width*height)
	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			nx := float64(x) / float64(width) * p.Scale
			nz := float64(z) / float64(height) * p.Scale

			var sum, norm float64
			amp, freq := 1.0, 1.0
			for o := 0; o < octaves; o++ {
				sum += amp * noise.Eval2(nx*freq, nz*freq)
				norm += amp
				amp *= p.Gain
				freq *= p.Lacunarity
			}

			heights[z*width+x] = Quantize(sum/norm, p.MaxHeight, p.Steps)
		}
	}
	return heights
}

// Quantize maps v in [0,1] onto [0,maxHeight]. With steps > 1 the result is
// one of steps evenly spaced levels; otherwise it is rounded to the nearest
// integer height.
func Quantize(v float64, maxHeight uint8, steps int) uint8 {
	v = math.Max(0, math.Min(1, v))
	top := float64(maxHeight)
	if steps <= 1 {
		return uint8(math.Round(v * top))
	}
	level := min(int(v*float64(steps)), steps-1)
	return uint8(math.Round(float64(level) * top / float64(steps-1)))
}

// LoadHeightsPNG reads an elevation image from disk. See DecodeHeights.
func LoadHeightsPNG(path string, maxHeight uint8) (heights []uint8, width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("opening elevation image: %w", err)
	}
	defer f.Close()
	return DecodeHeights(f, maxHeight)
}

// DecodeHeights converts each pixel's luminance into a height sample scaled
// to [0,maxHeight]. Image row y becomes terrain row z.
func DecodeHeights(r io.Reader, maxHeight uint8) (heights []uint8, width, height int, err error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decoding elevation image: %w", err)
	}

	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil, 0, 0, ErrEmptyImage
	}

	heights = make([]uint8, width*height)
	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+z)).(color.Gray)
			heights[z*width+x] = uint8((uint32(g.Y)*uint32(maxHeight) + 127) / 255)
		}
	}
	return heights, width, height, nil
}
