package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the panel reads and edits each frame.
type ControlsState struct {
	Paused        bool
	StepsPerFrame int
}

// ControlsAction reports one-shot button presses.
type ControlsAction struct {
	StepOnce    bool
	ResetCamera bool
}

const maxStepsPerFrame = 32

// ControlsPanel renders the raygui simulation controls.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the panel, so camera
// dragging can ignore it.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+c.height())
}

func (c *ControlsPanel) height() int32 {
	return 150
}

// Draw renders the panel, applies edits to state and returns button presses.
func (c *ControlsPanel) Draw(state *ControlsState) ControlsAction {
	var act ControlsAction
	if !c.visible {
		return act
	}

	r := c.renderer
	pad := float32(r.Theme.Padding)
	r.DrawPanel(c.x, c.y, c.width, c.height())

	x := float32(c.x) + pad
	y := float32(r.DrawSectionHeader(c.x+r.Theme.Padding, c.y+r.Theme.Padding, "Controls"))
	w := float32(c.width) - pad*2
	half := (w - pad) / 2

	label := "Pause"
	if state.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, label) {
		state.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: x + half + pad, Y: y, Width: half, Height: 24}, "Step") {
		act.StepOnce = true
	}
	y += 34

	rl.DrawText(fmt.Sprintf("Steps/frame: %d", state.StepsPerFrame), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	v := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: w, Height: 18}, "", "", float32(state.StepsPerFrame), 1, maxStepsPerFrame)
	state.StepsPerFrame = max(1, int(v+0.5))
	y += 28

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, "Reset Camera") {
		act.ResetCamera = true
	}

	return act
}
