// Package viewer draws a running game in a raylib window and maps input to
// camera and run controls. It owns no simulation state.
package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandy/camera"
	"github.com/pthm-cable/sandy/game"
	"github.com/pthm-cable/sandy/renderer"
	"github.com/pthm-cable/sandy/systems"
	"github.com/pthm-cable/sandy/ui"
)

const controlsLegend = "[Space] pause  [N] step  [</>] speed  [Tab] controls  [P] perf  [Drag] orbit  [Arrows] pan  [Wheel] zoom  [Home] reset"

// Viewer renders a *game.Game. Create it after rl.InitWindow.
type Viewer struct {
	g *game.Game

	screenWidth, screenHeight float32

	// Exactly one of orbit and flatCam is set, matching the game mode.
	orbit   *camera.Orbit
	flatCam *camera.Camera

	terrain *renderer.TerrainRenderer
	grains  *renderer.GrainRenderer
	top     float32

	hud      *ui.HUD
	perf     *ui.PerfPanel
	controls *ui.ControlsPanel

	paused   bool
	showPerf bool
	stepOnce bool
}

// New builds the renderers for g's world.
func New(g *game.Game) *Viewer {
	cfg := g.Config()
	v := &Viewer{
		g:            g,
		screenWidth:  float32(rl.GetScreenWidth()),
		screenHeight: float32(rl.GetScreenHeight()),
		grains:       renderer.NewGrainRenderer(0.8, float32(cfg.Grains.MaxSpeed)),
		hud:          ui.NewHUD(),
		controls:     ui.NewControlsPanel(10, 120, 220),
	}
	v.perf = ui.NewPerfPanel(int32(v.screenWidth)-230, 10, 220)

	w, h := g.Size()
	if sim := g.Sim(); sim != nil {
		v.top = float32(cfg.Terrain.MaxHeight) + float32(cfg.Grains.SpawnHeight)
		v.terrain = renderer.NewTerrainRenderer()
		v.terrain.Init(sim.Terrain(), float32(cfg.Terrain.MaxHeight))
		v.orbit = camera.NewOrbit(float32(w), float32(h), float32(cfg.Terrain.MaxHeight)/2,
			float32(cfg.Camera.Distance), float32(cfg.Camera.Pitch), float32(cfg.Camera.Yaw))
	} else {
		v.flatCam = camera.New(v.screenWidth, v.screenHeight, float32(w), float32(h))
	}
	return v
}

// Update handles input and advances the game unless paused.
func (v *Viewer) Update() {
	v.handleInput()

	switch {
	case !v.paused:
		v.g.UpdateHeadless()
	case v.stepOnce:
		v.g.Step()
	}
	v.stepOnce = false
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	v.g.Perf().RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 18, G: 18, B: 24, A: 255})

	if sim := v.g.Sim(); sim != nil {
		rl.BeginMode3D(v.camera3D())
		v.terrain.Draw()
		v.grains.Draw(sim.Positions(), sim.Velocities())
		w, h := v.g.Size()
		renderer.WorldBox(float32(w), float32(h), v.top)
		rl.EndMode3D()
	} else {
		v.grains.DrawFlat(v.g.Flat().Buffer(), systems.FlatStride, v.flatCam)
	}

	v.drawUI()
	rl.EndDrawing()
}

func (v *Viewer) drawUI() {
	data := ui.HUDData{
		Title:  "Sandy",
		Grains: v.g.Len(),
		Tick:   v.g.Tick(),
		Speed:  v.g.StepsPerUpdate(),
		FPS:    rl.GetFPS(),
		Paused: v.paused,
		Mode:   "flat",
	}
	if sim := v.g.Sim(); sim != nil {
		last := sim.LastTick()
		data.Mode = sim.Params().ResolveMode.String()
		data.TerrainContacts = last.TerrainContacts
		data.PairCollisions = last.PairCollisions
		data.Reflections = last.Reflections
	}
	v.hud.Draw(data)
	v.hud.DrawControls(int32(v.screenHeight), controlsLegend)

	state := ui.ControlsState{Paused: v.paused, StepsPerFrame: v.g.StepsPerUpdate()}
	act := v.controls.Draw(&state)
	v.paused = state.Paused
	v.g.SetStepsPerUpdate(state.StepsPerFrame)
	if act.StepOnce {
		v.stepOnce = true
	}
	if act.ResetCamera {
		v.resetCamera()
	}

	if v.showPerf {
		v.perf.Draw(v.g.Perf().Stats())
	}
}

func (v *Viewer) camera3D() rl.Camera3D {
	x, y, z := v.orbit.Position()
	return rl.Camera3D{
		Position:   rl.Vector3{X: x, Y: y, Z: z},
		Target:     rl.Vector3{X: v.orbit.TargetX, Y: v.orbit.TargetY, Z: v.orbit.TargetZ},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

func (v *Viewer) resetCamera() {
	if v.orbit != nil {
		v.orbit.Reset()
	} else {
		v.flatCam.Reset()
	}
}

// Unload releases GPU resources.
func (v *Viewer) Unload() {
	if v.terrain != nil {
		v.terrain.Unload()
	}
}
