package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundaryClampReflects(t *testing.T) {
	tests := []struct {
		name        string
		pos, vel    Vec3
		wantPos     Vec3
		wantVel     Vec3
		reflections int
	}{
		{"inside untouched", Vec3{5, 3, 5}, Vec3{1, 1, 1}, Vec3{5, 3, 5}, Vec3{1, 1, 1}, 0},
		{"mirror around zero x", Vec3{-0.5, 3, 5}, Vec3{-1, 0, 0}, Vec3{0.5, 3, 5}, Vec3{1, 0, 0}, 1},
		{"mirror around width", Vec3{10.25, 3, 5}, Vec3{2, 0, 0}, Vec3{9.75, 3, 5}, Vec3{-2, 0, 0}, 1},
		{"mirror around zero z", Vec3{5, 3, -2}, Vec3{0, 0, -3}, Vec3{5, 3, 2}, Vec3{0, 0, 3}, 1},
		{"mirror around height", Vec3{5, 3, 8.5}, Vec3{0, 0, 1}, Vec3{5, 3, 7.5}, Vec3{0, 0, -1}, 1},
		{"floor", Vec3{5, -0.25, 5}, Vec3{0, -1, 0}, Vec3{5, 0.25, 5}, Vec3{0, 1, 0}, 1},
		{"no ceiling", Vec3{5, 500, 5}, Vec3{0, 4, 0}, Vec3{5, 500, 5}, Vec3{0, 4, 0}, 0},
		{"edges are inside", Vec3{10, 0, 8}, Vec3{1, 1, 1}, Vec3{10, 0, 8}, Vec3{1, 1, 1}, 0},
		{"corner", Vec3{-1, -1, 9}, Vec3{-1, -1, 1}, Vec3{1, 1, 7}, Vec3{1, 1, -1}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewBoundaryClamp(10, 8, 1)
			pos := []float32{tt.pos.X, tt.pos.Y, tt.pos.Z}
			vel := []float32{tt.vel.X, tt.vel.Y, tt.vel.Z}

			assert.Equal(t, tt.reflections, c.Clamp(pos, vel))
			assert.Equal(t, tt.wantPos, vec3At(pos, 0))
			assert.Equal(t, tt.wantVel, vec3At(vel, 0))
		})
	}
}

func TestBoundaryClampDampsEveryTick(t *testing.T) {
	c := NewBoundaryClamp(10, 10, 0.5)
	pos := []float32{5, 5, 5, -1, 5, 5}
	vel := []float32{2, 4, -8, -2, 0, 0}

	c.Clamp(pos, vel)
	assert.Equal(t, []float32{1, 2, -4, 1, 0, 0}, vel)
}

func TestBoundaryContainment(t *testing.T) {
	const w, h, n = 20, 12, 300
	rng := rand.New(rand.NewSource(5))
	c := NewBoundaryClamp(w, h, 0.95)

	pos := make([]float32, n*3)
	vel := make([]float32, n*3)
	for i := 0; i < n; i++ {
		pos[i*3] = rng.Float32()*(w+8) - 4
		pos[i*3+1] = rng.Float32()*10 - 3
		pos[i*3+2] = rng.Float32()*(h+8) - 4
	}

	c.Clamp(pos, vel)
	for i := 0; i < n; i++ {
		p := vec3At(pos, i)
		if p.X < 0 || p.X > w || p.Z < 0 || p.Z > h || p.Y < 0 {
			t.Errorf("grain %d outside domain: %+v", i, p)
		}
	}
}
