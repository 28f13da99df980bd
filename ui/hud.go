package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/serpent/spine"
	"github.com/pthm-cable/serpent/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Creatures      int
	Nodes          int
	Tick           int32
	StepsPerUpdate int
	FPS            int32
	Paused         bool
	Mode           string
	Band           spine.FoldBand

	// Fold corrections in the last tick, and the most recent one seen.
	Corrections int
	Last        spine.Correction
	HasLast     bool
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
		fmt.Sprintf("Creatures: %d | Nodes: %d | Mode: %s", data.Creatures, data.Nodes, data.Mode),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d | Fold: %.0f-%.0f", data.Tick, data.StepsPerUpdate, data.FPS, data.Band.Min, data.Band.Max),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)

	h.drawCorrection(10, 100, data)
}

// drawCorrection shows the two candidate deviations of the most recent fold
// correction, the chosen side in green and the other in red.
func (h *HUD) drawCorrection(x, y int32, data HUDData) {
	t := h.renderer.Theme
	rl.DrawText(fmt.Sprintf("Corrections: %d", data.Corrections), x, y, 16, rl.LightGray)
	if !data.HasLast {
		return
	}
	y += 20

	cw, ccw := t.Bad, t.Bad
	switch data.Last.Side {
	case spine.SideRight:
		cw = t.Good
	case spine.SideLeft:
		ccw = t.Good
	}
	rl.DrawText(fmt.Sprintf("cw %.1f", data.Last.DeviationRight), x, y, 16, cw)
	rl.DrawText(fmt.Sprintf("ccw %.1f", data.Last.DeviationLeft), x+110, y, 16, ccw)
	rl.DrawText(fmt.Sprintf("node %d, bend %.1f", data.Last.Node, data.Last.Bend), x+230, y, 16, rl.Gray)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	SystemTimes map[string]time.Duration
	Total       time.Duration
	Registry    *systems.SystemRegistry
}

// PerfPanel renders the system performance panel.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel. Phases are listed in registry order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("System Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, info := range data.Registry.All() {
		avg, ok := data.SystemTimes[info.ID]
		if !ok {
			continue
		}
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 60 {
			color = rl.Red
		} else if pct > 30 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-16s %6s %5.1f%%", data.Registry.GetName(info.ID), avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
