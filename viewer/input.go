package viewer

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	maxSteps = 32

	flatPanPixels = 8.0

	// Degrees of orbit per pixel of mouse drag.
	dragSensitivity = 0.3
)

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}
	if rl.IsKeyPressed(rl.KeyN) {
		v.stepOnce = true
	}

	// Steps-per-update control with < > keys (comma and period)
	steps := v.g.StepsPerUpdate()
	if rl.IsKeyPressed(rl.KeyComma) && steps > 1 {
		v.g.SetStepsPerUpdate(steps - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && steps < maxSteps {
		v.g.SetStepsPerUpdate(steps + 1)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		v.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		v.showPerf = !v.showPerf
	}

	v.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h

	if v.flatCam != nil {
		v.flatCam.Resize(w, h)
	}
	v.perf.SetPosition(int32(w)-230, 10)
}

// handleCameraInput processes orbit, pan and zoom controls.
func (v *Viewer) handleCameraInput() {
	if rl.IsKeyPressed(rl.KeyHome) {
		v.resetCamera()
	}

	zoom := float32(1)
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		zoom = 1 + wheel*0.1
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		zoom *= 1.25
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		zoom *= 0.8
	}

	var right, forward float32
	if rl.IsKeyDown(rl.KeyRight) {
		right++
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		right--
	}
	if rl.IsKeyDown(rl.KeyUp) {
		forward++
	}
	if rl.IsKeyDown(rl.KeyDown) {
		forward--
	}

	if v.flatCam != nil {
		// Moving the view right slides the world left on screen.
		v.flatCam.Pan(-right*flatPanPixels, forward*flatPanPixels)
		if zoom != 1 {
			v.flatCam.ZoomBy(zoom)
		}
		return
	}

	panSpeed := float32(0.5) / v.orbit.Zoom
	if right != 0 || forward != 0 {
		v.orbit.Pan(right*panSpeed, forward*panSpeed)
	}
	if zoom != 1 {
		v.orbit.ZoomBy(zoom)
	}

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && !v.controls.Contains(mouse.X, mouse.Y) {
		d := rl.GetMouseDelta()
		v.orbit.Rotate(-d.X*dragSensitivity, d.Y*dragSensitivity)
	}
}
