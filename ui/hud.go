package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandy/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title           string
	Grains          int
	Tick            int32
	Speed           int
	FPS             int32
	Paused          bool
	Mode            string
	TerrainContacts int
	PairCollisions  int
	Reflections     int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Grains: %d | Mode: %s", data.Grains, data.Mode),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Contacts: %d | Pairs: %d | Reflections: %d", data.TerrainContacts, data.PairCollisions, data.Reflections),
		10, 75, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 95, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase timing of the simulation step.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

var perfRows = []struct{ phase, label string }{
	{telemetry.PhaseIntegrate, "Integrate"},
	{telemetry.PhaseSpatialGrid, "Grid"},
	{telemetry.PhaseCollision, "Collision"},
	{telemetry.PhaseBoundary, "Boundary"},
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	pad := r.Theme.Padding
	height := r.Theme.LineHeight*int32(len(perfRows)+3) + pad*2
	r.DrawPanel(p.x, p.y, p.width, height)

	y := r.DrawSectionHeader(p.x+pad, p.y+pad, "Step Timing")
	y = r.DrawLabelValue(p.x+pad, y, "Avg tick", fmt.Sprintf("%d us", stats.AvgTickDuration.Microseconds()))
	y = r.DrawLabelValue(p.x+pad, y, "Ticks/s", fmt.Sprintf("%.0f", stats.TicksPerSecond))
	for _, row := range perfRows {
		y = r.DrawBar(p.x+pad, y, row.label, stats.PhasePct[row.phase], p.width-pad*2)
	}
}
