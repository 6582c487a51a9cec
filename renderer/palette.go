package renderer

import "image/color"

// HeightColor maps a normalized elevation in [0,1] onto a sand ramp:
// wet dark sand, dry sand, pale dune crest.
func HeightColor(v float32) color.RGBA {
	v = clamp01(v)
	var r, g, b float32
	if v < 0.5 {
		t := v / 0.5
		r = 90 + t*100
		g = 70 + t*85
		b = 50 + t*50
	} else {
		t := (v - 0.5) / 0.5
		r = 190 + t*50
		g = 155 + t*65
		b = 100 + t*80
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

// SpeedColor shades a grain from warm amber at rest to white when fast.
// maxSpeed is the speed drawn as full white.
func SpeedColor(speed, maxSpeed float32) color.RGBA {
	t := float32(0)
	if maxSpeed > 0 {
		t = clamp01(speed / maxSpeed)
	}
	return color.RGBA{
		R: uint8(230 + t*25),
		G: uint8(170 + t*85),
		B: uint8(60 + t*195),
		A: 255,
	}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
