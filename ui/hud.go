package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/asteroid/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Score      int
	Lives      int
	Enemies    int
	Bodies     int
	Tick       uint64
	Speed      int
	FPS        int32
	Paused     bool
	Invincible bool
	GameOver   bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Score: %d | Lives: %d | Asteroids: %d | Bodies: %d", data.Score, data.Lives, data.Enemies, data.Bodies),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Step: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	switch {
	case data.GameOver:
		status = "GAME OVER"
	case data.Paused:
		status = "PAUSED"
	}
	if data.Invincible {
		status += " (invincible)"
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the fixed-step phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	phases := telemetry.Phases()
	r := p.renderer
	padding := r.Theme.Padding
	height := r.Theme.LineHeight*int32(len(phases)+4) + padding*2

	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := r.DrawSectionHeader(x, p.y+padding, "Step Performance")
	y = r.DrawLabelValue(x, y, "avg", stats.AvgStep.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "p99", stats.P99Step.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "steps/s", fmt.Sprintf("%.0f", stats.StepsPerSecond))

	for _, phase := range phases {
		y = r.DrawBar(x, y, phase.String(), float32(stats.Share(phase)), p.width-2*padding)
	}
}
