package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the controls panel reads and edits each frame.
type ControlsState struct {
	Paused     bool
	Invincible bool
	Speed      int
	MinSpeed   int
	MaxSpeed   int
}

// ControlsActions reports one-shot requests made through the panel.
type ControlsActions struct {
	Step         bool
	ResetCamera  bool
	ToggledInvul bool
}

// ControlsPanel renders the left-side panel with simulation controls and
// overlay toggles.
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

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and applies edits to state and overlays.
func (c *ControlsPanel) Draw(state *ControlsState, overlays *OverlayRegistry) ControlsActions {
	var actions ControlsActions
	if !c.visible {
		return actions
	}

	r := c.renderer
	padding := r.Theme.Padding
	rowHeight := float32(24)
	rows := 6 + len(overlays.All())
	panelHeight := int32(float32(rows)*(rowHeight+4)) + padding*3

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	w := float32(c.width - 2*padding)
	half := (w - 6) / 2

	rl.DrawText("Simulation", int32(x), int32(y), 16, rl.White)
	y += rowHeight

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: rowHeight}, toggleText(state.Paused, "Resume", "Pause")) {
		state.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: y, Width: half, Height: rowHeight}, "Step") {
		actions.Step = true
	}
	y += rowHeight + 4

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowHeight}, toggleText(state.Invincible, "Invincible: ON", "Invincible: OFF")) {
		state.Invincible = !state.Invincible
		actions.ToggledInvul = true
	}
	y += rowHeight + 4

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowHeight}, "Reset Camera") {
		actions.ResetCamera = true
	}
	y += rowHeight + 4

	rl.DrawText(fmt.Sprintf("Speed: %dx", state.Speed), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += float32(r.Theme.LineHeight)
	speed := gui.SliderBar(
		rl.Rectangle{X: x + 16, Y: y, Width: w - 40, Height: 16},
		fmt.Sprint(state.MinSpeed), fmt.Sprint(state.MaxSpeed),
		float32(state.Speed), float32(state.MinSpeed), float32(state.MaxSpeed),
	)
	state.Speed = int(speed + 0.5)
	y += rowHeight + 4

	rl.DrawText("Overlays", int32(x), int32(y), 16, rl.White)
	y += rowHeight

	for _, desc := range overlays.All() {
		enabled := overlays.IsEnabled(desc.ID)
		label := fmt.Sprintf("[%s] %s", desc.KeyLabel, desc.Name)
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowHeight}, toggleText(enabled, label+": ON", label+": OFF")) {
			overlays.Toggle(desc.ID)
		}
		y += rowHeight + 4
	}

	return actions
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
