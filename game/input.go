package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/serpent/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < MaxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyT) {
		g.SetMode(g.mode.Next(false))
		slog.Info("steering mode", "mode", g.mode.String())
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.reset()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.selectNext()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		g.following = !g.following && g.hasSelection
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.saveSnapshot(nil)
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.controlsPanel.Toggle()
	}

	g.handleOverlayKeys()
	g.handleCameraInput()
	g.handlePointer()
}

// handlePointer feeds the cursor to steering and selects on click. Input
// over the tuning panel belongs to its widgets.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()
	if g.tuningPanel.Contains(mouse) {
		return
	}

	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	p := r2.Vec{X: float64(wx), Y: float64(wy)}
	g.steering.SetPointer(p)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.selectAt(p)
	}
}

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, key := range g.overlays.Keys() {
		if !rl.IsKeyPressed(key) {
			continue
		}
		id, _, ok := g.overlays.HandleKeyPress(key)
		if ok && id == ui.OverlayTuning {
			g.tuningPanel.Toggle()
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenW && h == g.screenH {
		return
	}
	g.screenW = w
	g.screenH = h

	g.camera.Resize(w, h)
	right := int32(w) - 250
	g.controlsPanel.SetPosition(right, 10)
	g.tuningPanel.SetPosition(right, 10)
	g.inspector.SetPosition(right, 320)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.camera.Zoom

	panned := false
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
		panned = true
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
		panned = true
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
		panned = true
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
		panned = true
	}
	if panned {
		g.following = false
	}

	// Zoom toward the cursor with the wheel
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		g.camera.ZoomAt(1+wheel*0.1, mouse.X, mouse.Y)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
		g.following = false
	}
}

// reset rebuilds every creature at its starting position.
func (g *Game) reset() {
	if err := g.resetCreatures(); err != nil {
		slog.Error("failed to reset creatures", "error", err)
	}
}
