// Terrain preview tool - tune the procedural heightfield with sliders.
//
// Usage: go run ./cmd/terrainpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/sandy/config"
	"github.com/pthm-cable/sandy/renderer"
	"github.com/pthm-cable/sandy/scene"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 128
)

type previewParams struct {
	scene.TerrainParams
	Seed int64
}

// slider draws a labelled slider and reports the new value.
type slider struct {
	x, y float32
}

func (s *slider) row(label, format string, value, lo, hi float32) float32 {
	rl.DrawText(label, int32(s.x), int32(s.y), 14, rl.Gray)
	s.y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: s.x, Y: s.y, Width: float32(panelWidth - 80), Height: 20},
		"", "", value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(s.x+float32(panelWidth-70)), int32(s.y+2), 16, rl.DarkGray)
	s.y += 35
	return v
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	defaults := previewParams{TerrainParams: scene.TerrainParamsFromConfig(cfg), Seed: 1}
	params := defaults

	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	pixels := make([]rl.Color, gridSize*gridSize)
	var heights []uint8
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			heights = scene.GenerateHeights(params.Seed, gridSize, gridSize, params.TerrainParams)
			top := max(float32(params.MaxHeight), 1)
			for i, h := range heights {
				pixels[i] = rl.Color(renderer.HeightColor(float32(h) / top))
			}
			rl.UpdateTexture(texture, pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		drawStats(heights, int32(previewSize+25))

		s := slider{x: float32(previewSize + 20), y: 10}
		rl.DrawText("Terrain Parameters", int32(s.x), int32(s.y), 20, rl.DarkGray)
		s.y += 35

		next := params
		next.Scale = float64(s.row("Scale (features per world)", "%.1f", float32(params.Scale), 0.5, 12))
		next.Octaves = int(s.row("Octaves", "%.0f", float32(params.Octaves), 1, 8) + 0.5)
		next.Lacunarity = float64(s.row("Lacunarity", "%.2f", float32(params.Lacunarity), 1.5, 4))
		next.Gain = float64(s.row("Gain", "%.2f", float32(params.Gain), 0.2, 0.9))
		next.MaxHeight = uint8(s.row("Max height", "%.0f", float32(params.MaxHeight), 1, 64) + 0.5)
		next.Steps = int(s.row("Steps (0 = smooth)", "%.0f", float32(params.Steps), 0, 32) + 0.5)
		next.Seed = int64(s.row("Seed", "%.0f", float32(params.Seed), 0, 99999))
		if next != params {
			params = next
			needsRegen = true
		}

		y := s.y + 10
		if gui.Button(rl.Rectangle{X: s.x, Y: y, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: s.x + 130, Y: y, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		y += 55

		yaml := terrainYAML(params.TerrainParams)
		rl.DrawText("YAML Config:", int32(s.x), int32(y), 16, rl.DarkGray)
		y += 25
		for _, line := range strings.Split(yaml, "\n") {
			rl.DrawText(line, int32(s.x), int32(y), 14, rl.Gray)
			y += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(s.x), windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func drawStats(heights []uint8, y int32) {
	if len(heights) == 0 {
		return
	}
	vals := make([]float64, len(heights))
	for i, h := range heights {
		vals[i] = float64(h)
	}
	mean, std := stat.MeanStdDev(vals, nil)
	rl.DrawText(fmt.Sprintf("Min: %.0f  Max: %.0f  Mean: %.2f  Std: %.2f",
		floats.Min(vals), floats.Max(vals), mean, std), 15, y, 16, rl.DarkGray)
}

func terrainYAML(p scene.TerrainParams) string {
	return fmt.Sprintf(`terrain:
  scale: %.1f
  octaves: %d
  lacunarity: %.2f
  gain: %.2f
  max_height: %d
  steps: %d`,
		p.Scale, p.Octaves, p.Lacunarity, p.Gain, p.MaxHeight, p.Steps)
}
