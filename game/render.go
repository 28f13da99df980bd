package game

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/serpent/camera"
	"github.com/pthm-cable/serpent/renderer"
	"github.com/pthm-cable/serpent/sim"
	"github.com/pthm-cable/serpent/spine"
	"github.com/pthm-cable/serpent/ui"
)

const controlsHint = "[H] controls  [Space] pause  [T] mode  [Tab] select  [U] tuning"

var selectionColor = rl.Color{R: 255, G: 255, B: 0, A: 180}

// Draw renders the frame.
func (g *Game) Draw() {
	cfg := g.config()

	rl.BeginDrawing()
	if g.overlays.IsEnabled(ui.OverlayGrid) {
		g.background.Draw(g.camera)
	} else {
		rl.ClearBackground(sim.RGBA(cfg.Render.Background))
	}

	start := time.Now()
	g.drawCreatures()
	g.drawSelection()
	g.perf.Record("draw", time.Since(start))

	g.drawUI()

	rl.EndDrawing()
}

// drawCreatures renders every creature with the enabled visual overlays.
func (g *Game) drawCreatures() {
	cfg := g.config()
	showSkin := g.overlays.IsEnabled(ui.OverlaySkin)
	showWire := g.overlays.IsEnabled(ui.OverlayWireframe)
	showTargets := g.overlays.IsEnabled(ui.OverlayTargets)

	query := g.creatureFilter.Query()
	for query.Next() {
		_, sp, target, _, _, look := query.Get()

		if groupVisible(g.camera, sp.Group) {
			if showSkin {
				g.skin.Draw(sp.Group, renderer.SkinStyle{
					Fill:         look.Fill,
					Outline:      look.Outline,
					OutlineWidth: float32(cfg.Render.OutlineWidth),
					EyeRadius:    float32(cfg.Render.EyeRadius),
					EyeColor:     sim.RGBA(cfg.Render.EyeColor),
				}, g.camera)
			}
			if showWire {
				renderer.DrawWireframe(sp.Group, g.camera)
			}
		}
		if showTargets {
			renderer.DrawTarget(target.Point, g.camera)
		}
	}
}

// groupVisible reports whether any node's size circle may be on screen.
func groupVisible(cam *camera.Camera, group *spine.NodeGroup) bool {
	for i := 0; i < group.TotalNodes(); i++ {
		n := group.Node(i)
		if cam.IsVisible(float32(n.Position.X), float32(n.Position.Y), float32(n.Size)) {
			return true
		}
	}
	return false
}

// drawSelection rings the selected creature's head.
func (g *Game) drawSelection() {
	head, ok := g.selectedHead()
	if !ok {
		return
	}
	_, sp, _, _, _, _ := g.creatureMapper.Get(g.selected)
	sx, sy := g.camera.WorldToScreen(float32(head.X), float32(head.Y))
	r := (float32(sp.Group.Head().Size) + selectRadius) * g.camera.Zoom
	rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, r, selectionColor)
}

// drawUI renders the HUD and panels.
func (g *Game) drawUI() {
	g.hud.Draw(ui.HUDData{
		Title:          "Serpent",
		Creatures:      g.lastSummary.Creatures,
		Nodes:          g.totalNodes(),
		Tick:           g.tick,
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
		Mode:           g.mode.String(),
		Band:           g.band,
		Corrections:    g.lastSummary.Corrections,
		Last:           g.sampler.Last,
		HasLast:        g.sampler.HasLast,
	})

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(ui.PerfPanelData{
			SystemTimes: g.perf.Averages(),
			Total:       g.perf.Total(),
			Registry:    g.registry,
		})
	}

	if g.overlays.IsEnabled(ui.OverlayInspector) {
		if data, ok := g.inspectorData(); ok {
			g.inspector.Draw(data)
		}
	}

	state := ui.TuningState{
		Speed:          float32(g.currentSpeed()),
		Band:           g.band,
		StepsPerUpdate: g.stepsPerUpdate,
		Paused:         g.paused,
		Wireframe:      g.overlays.IsEnabled(ui.OverlayWireframe),
	}
	g.applyTuning(state, g.tuningPanel.Draw(&state))

	g.controlsPanel.Draw(g.overlays)
	g.hud.DrawControls(int32(g.screenH), controlsHint)
}

// applyTuning applies tuning panel edits.
func (g *Game) applyTuning(state ui.TuningState, ch ui.TuningChanges) {
	g.paused = state.Paused
	if state.Wireframe != g.overlays.IsEnabled(ui.OverlayWireframe) {
		g.overlays.SetEnabled(ui.OverlayWireframe, state.Wireframe)
		g.overlays.SetEnabled(ui.OverlaySkin, !state.Wireframe)
	}

	if !ch.Any() {
		return
	}
	if ch.Speed {
		g.speedOverride = float64(state.Speed)
		g.chain.SetSpeed(g.speedOverride)
	}
	if ch.Band {
		if err := g.SetFoldBand(state.Band); err != nil {
			slog.Warn("rejected fold band", "min", state.Band.Min, "max", state.Band.Max, "error", err)
		}
	}
	if ch.Steps {
		g.stepsPerUpdate = max(1, min(state.StepsPerUpdate, MaxStepsPerUpdate))
	}
	if ch.CycleMode {
		g.SetMode(g.mode.Next(false))
	}
	if ch.Reset {
		g.reset()
	}
}

// currentSpeed returns the head speed shown on the tuning panel.
func (g *Game) currentSpeed() float64 {
	if g.speedOverride > 0 {
		return g.speedOverride
	}
	if cs := g.config().Creatures; len(cs) > 0 {
		return cs[0].Speed
	}
	return 0
}

// totalNodes counts nodes across every creature.
func (g *Game) totalNodes() int {
	n := 0
	query := g.creatureFilter.Query()
	for query.Next() {
		_, sp, _, _, _, _ := query.Get()
		n += sp.Group.TotalNodes()
	}
	return n
}
