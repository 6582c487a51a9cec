package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandy/camera"
)

// GrainRenderer draws grains from the simulation buffers.
type GrainRenderer struct {
	// Size is the drawn edge length of a grain in world units.
	Size float32
	// MaxSpeed is the speed drawn as full white.
	MaxSpeed float32
}

// NewGrainRenderer creates a grain renderer.
func NewGrainRenderer(size, maxSpeed float32) *GrainRenderer {
	return &GrainRenderer{Size: size, MaxSpeed: maxSpeed}
}

// Draw renders stride-3 grains as small cubes. Call inside BeginMode3D.
func (r *GrainRenderer) Draw(pos, vel []float32) {
	size := rl.Vector3{X: r.Size, Y: r.Size, Z: r.Size}
	for i := 0; i+3 <= len(pos); i += 3 {
		vx, vy, vz := vel[i], vel[i+1], vel[i+2]
		speed := float32(math.Sqrt(float64(vx*vx + vy*vy + vz*vz)))
		c := SpeedColor(speed, r.MaxSpeed)
		rl.DrawCubeV(rl.Vector3{X: pos[i], Y: pos[i+1] + r.Size/2, Z: pos[i+2]}, size, rl.Color(c))
	}
}

// DrawFlat renders stride-4 grains of the 2D variant as points whose size
// grows with zoom.
func (r *GrainRenderer) DrawFlat(buf []float32, stride int, cam *camera.Camera) {
	px := max(cam.Zoom, 1)
	for i := 0; i+stride <= len(buf); i += stride {
		if !cam.IsVisible(buf[i], buf[i+1], 1) {
			continue
		}
		sx, sy := cam.WorldToScreen(buf[i], buf[i+1])
		vx, vy := buf[i+2], buf[i+3]
		speed := float32(math.Sqrt(float64(vx*vx + vy*vy)))
		rl.DrawRectangleV(rl.Vector2{X: sx - px/2, Y: sy - px/2}, rl.Vector2{X: px, Y: px}, rl.Color(SpeedColor(speed, r.MaxSpeed)))
	}
}

// WorldBox draws the wireframe of the containment volume.
func WorldBox(width, height, top float32) {
	rl.DrawCubeWiresV(
		rl.Vector3{X: width / 2, Y: top / 2, Z: height / 2},
		rl.Vector3{X: width, Y: top, Z: height},
		rl.Color{R: 80, G: 80, B: 90, A: 255},
	)
}
