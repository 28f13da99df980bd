package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/serpent/spine"
)

// TuningState is the set of live solver parameters the panel edits.
type TuningState struct {
	Speed          float32
	Band           spine.FoldBand
	StepsPerUpdate int
	Paused         bool
	Wireframe      bool
}

// TuningChanges reports what the user changed this frame.
type TuningChanges struct {
	Speed     bool
	Band      bool
	Steps     bool
	CycleMode bool
	Reset     bool
}

// Any reports whether anything changed.
func (c TuningChanges) Any() bool {
	return c.Speed || c.Band || c.Steps || c.CycleMode || c.Reset
}

// TuningPanel renders raygui sliders for solver parameters.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewTuningPanel creates a new tuning panel.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (p *TuningPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Toggle switches panel visibility.
func (p *TuningPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Contains reports whether a screen point is over the visible panel, so
// pointer input there is not fed to the creatures.
func (p *TuningPanel) Contains(pos rl.Vector2) bool {
	return p.visible && rl.CheckCollisionPointRec(pos, p.bounds())
}

func (p *TuningPanel) bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(p.x), Y: float32(p.y), Width: float32(p.width), Height: 300}
}

// Draw renders the panel and applies edits to state.
func (p *TuningPanel) Draw(state *TuningState) TuningChanges {
	var ch TuningChanges
	if !p.visible {
		return ch
	}

	r := p.renderer
	b := p.bounds()
	r.DrawPanel(p.x, p.y, p.width, int32(b.Height))

	pad := float32(r.Theme.Padding)
	x := b.X + pad
	y := b.Y + pad
	sliderW := b.Width - 2*pad - 40

	rl.DrawText("Solver", int32(x), int32(y), 16, rl.White)
	y += 24

	slider := func(label, lo, hi string, value, min, max float32) float32 {
		rl.DrawText(label, int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 14
		v := gui.SliderBar(rl.Rectangle{X: x + 24, Y: y, Width: sliderW - 48, Height: 16}, lo, hi, value, min, max)
		rl.DrawText(fmt.Sprintf("%.0f", v), int32(x+sliderW), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
		y += 26
		return v
	}

	if v := slider(fmt.Sprintf("Head speed %.1f", state.Speed), "0.5", "12", state.Speed, 0.5, 12); v != state.Speed {
		state.Speed = v
		ch.Speed = true
	}

	// One slider: the band is symmetric about 180.
	bend := slider("Max joint bend", "1", "179", float32(state.Band.Min), 1, 179)
	if int(bend) != int(state.Band.Min) {
		state.Band = spine.NewFoldBand(float64(int(bend)))
		ch.Band = true
	}

	steps := slider("Steps per frame", "1", "10", float32(state.StepsPerUpdate), 1, 10)
	if int(steps) != state.StepsPerUpdate {
		state.StepsPerUpdate = int(steps)
		ch.Steps = true
	}

	bw := (b.Width - 3*pad) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: 24}, toggleText(state.Paused, "Resume", "Pause")) {
		state.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: x + bw + pad, Y: y, Width: bw, Height: 24}, toggleText(state.Wireframe, "Skin", "Wireframe")) {
		state.Wireframe = !state.Wireframe
	}
	y += 32
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: 24}, "Next mode") {
		ch.CycleMode = true
	}
	if gui.Button(rl.Rectangle{X: x + bw + pad, Y: y, Width: bw, Height: 24}, "Reset") {
		ch.Reset = true
	}

	return ch
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
