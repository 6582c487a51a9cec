package renderer

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandy/systems"
)

// TerrainRenderer draws the height field as a textured mesh.
type TerrainRenderer struct {
	model       rl.Model
	texture     rl.Texture2D
	initialized bool
}

// NewTerrainRenderer creates a new terrain renderer.
func NewTerrainRenderer() *TerrainRenderer {
	return &TerrainRenderer{}
}

// Init uploads the mesh and color texture (must be called after the raylib
// window is created).
func (r *TerrainRenderer) Init(terrain *systems.TerrainField, maxHeight float32) {
	if r.initialized {
		return
	}

	w, h := terrain.Width(), terrain.Height()
	gray := image.NewGray(image.Rect(0, 0, w, h))
	tint := image.NewRGBA(image.Rect(0, 0, w, h))
	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			y := terrain.HeightAt(x, z)
			gray.SetGray(x, z, color.Gray{Y: uint8(y)})
			v := float32(0)
			if maxHeight > 0 {
				v = y / maxHeight
			}
			tint.SetRGBA(x, z, HeightColor(v))
		}
	}

	// A gray value of 255 maps to size.Y, so a 255-high mesh reproduces the
	// samples one to one. Vertices land on integer sample coordinates.
	heightmap := rl.NewImageFromImage(gray)
	mesh := rl.GenMeshHeightmap(*heightmap, rl.Vector3{X: float32(max(w-1, 1)), Y: 255, Z: float32(max(h-1, 1))})
	rl.UnloadImage(heightmap)

	colors := rl.NewImageFromImage(tint)
	r.texture = rl.LoadTextureFromImage(colors)
	rl.UnloadImage(colors)

	r.model = rl.LoadModelFromMesh(mesh)
	rl.SetMaterialTexture(r.model.Materials, rl.MapDiffuse, r.texture)

	r.initialized = true
}

// Draw renders the terrain. Call between BeginMode3D and EndMode3D.
func (r *TerrainRenderer) Draw() {
	if !r.initialized {
		return
	}
	rl.DrawModel(r.model, rl.Vector3{}, 1.0, rl.White)
}

// Unload frees GPU resources.
func (r *TerrainRenderer) Unload() {
	if r.initialized {
		rl.UnloadModel(r.model)
		rl.UnloadTexture(r.texture)
		r.initialized = false
	}
}
