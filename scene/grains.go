package scene

import (
	"math/rand"

	"github.com/pthm-cable/sandy/systems"
)

// SeedGrains scatters count grains over the width x height domain.
// Each grain starts at a random column with y in [floor, floor+spawnHeight)
// and a horizontal velocity in [-maxSpeed, maxSpeed). Vertical velocity is 0.
func SeedGrains(rng *rand.Rand, count, width, height int, floor, spawnHeight, maxSpeed float32) (pos, vel []float32) {
	pos = make([]float32, count*3)
	vel = make([]float32, count*3)
	w, h := float32(width), float32(height)
	for i := 0; i < count; i++ {
		pos[i*3] = rng.Float32() * w
		pos[i*3+1] = floor + rng.Float32()*spawnHeight
		pos[i*3+2] = rng.Float32() * h

		vel[i*3] = (rng.Float32()*2 - 1) * maxSpeed
		vel[i*3+2] = (rng.Float32()*2 - 1) * maxSpeed
	}
	return pos, vel
}

// SeedFlat fills a stride-4 buffer for the 2D variant: x in [0,width),
// y in [0,height), velocities in [-maxSpeed, maxSpeed).
func SeedFlat(rng *rand.Rand, count, width, height int, maxSpeed float32) []float32 {
	buf := make([]float32, count*systems.FlatStride)
	w, h := float32(width), float32(height)
	for i := 0; i < count; i++ {
		o := i * systems.FlatStride
		buf[o] = rng.Float32() * w
		buf[o+1] = rng.Float32() * h
		buf[o+2] = (rng.Float32()*2 - 1) * maxSpeed
		buf[o+3] = (rng.Float32()*2 - 1) * maxSpeed
	}
	return buf
}
