// Package game wires the solver, steering, telemetry and viewer together.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/serpent/camera"
	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/renderer"
	"github.com/pthm-cable/serpent/sim"
	"github.com/pthm-cable/serpent/spine"
	"github.com/pthm-cable/serpent/systems"
	"github.com/pthm-cable/serpent/telemetry"
	"github.com/pthm-cable/serpent/ui"
)

// Game holds the complete animation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World

	creatureMapper *sim.CreatureMap
	creatureFilter *sim.CreatureFilter

	steering *systems.SteeringSystem
	chain    *systems.ChainSystem
	parallel *parallelState

	// Solver parameters shared by every creature
	band          spine.FoldBand
	mode          components.SteerMode
	speedOverride float64 // 0 = use each creature's configured speed

	// Selection
	selected     ecs.Entity
	hasSelection bool
	following    bool
	picker       *systems.SpatialGrid

	// Rendering (nil when headless)
	camera        *camera.Camera
	skin          *renderer.SkinRenderer
	background    *renderer.BackgroundRenderer
	hud           *ui.HUD
	perfPanel     *ui.PerfPanel
	tuningPanel   *ui.TuningPanel
	controlsPanel *ui.ControlsPanel
	inspector     *ui.Inspector
	overlays      *ui.OverlayRegistry
	registry      *systems.SystemRegistry
	perf          *PerfStats

	// Telemetry
	sampler          *sim.Sampler
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	lastSummary      systems.TickSummary
	bendScratch      []float64

	// State
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
	seed           int64
	logStats       bool
	snapshotDir    string

	// Window dimensions
	screenW, screenH float32
}

// NewGameWithOptions creates a game. Games built from separate configs can
// run concurrently.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	world := ecs.NewWorld()

	modeName := cfg.Target.Mode
	if opts.TargetMode != "" {
		modeName = opts.TargetMode
	}
	mode, err := components.ParseSteerMode(modeName)
	if err != nil {
		return nil, err
	}
	if opts.Headless && mode == components.SteerPointer {
		// Nothing moves the pointer without a window.
		mode = mode.Next(true)
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = cfg.Simulation.StepsPerUpdate
	}

	g := &Game{
		cfg:   cfg,
		world: world,
		creatureMapper: sim.NewCreatureMap(world),
		creatureFilter: sim.NewCreatureFilter(world),
		band:           cfg.Fold.Band(),
		mode:           mode,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		seed:           opts.Seed,
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		statsCallback:  opts.StatsCallback,
		screenW:        cfg.Derived.ScreenW32,
		screenH:        cfg.Derived.ScreenH32,
		registry:       systems.NewSystemRegistry(),
		perf:           NewPerfStats(),
		parallel:       newParallelState(),
		picker:         systems.NewSpatialGrid(cfg.Derived.WorldW, cfg.Derived.WorldH, pickCellSize),
	}

	g.steering = systems.NewSteeringSystem(cfg.Target, cfg.Derived.WorldW, cfg.Derived.WorldH, opts.Seed)
	g.chain = systems.NewChainSystem(world, g.steering)

	if err := g.spawnCreatures(); err != nil {
		return nil, err
	}

	g.sampler = sim.NewSampler(cfg.Telemetry.StatsWindow)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if om != nil {
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
	}

	if !opts.Headless {
		g.initViewer(cfg)
	}

	return g, nil
}

// initViewer creates the camera, renderers and panels.
func (g *Game) initViewer(cfg *config.Config) {
	g.camera = camera.New(g.screenW, g.screenH, float32(cfg.Derived.WorldW), float32(cfg.Derived.WorldH))
	g.skin = renderer.NewSkinRenderer()
	g.background = renderer.NewBackgroundRenderer(
		float32(cfg.Derived.WorldW), float32(cfg.Derived.WorldH), float32(cfg.Render.GridSpacing),
		sim.RGBA(cfg.Render.Background), sim.RGBA(cfg.Render.GridColor),
	)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 150)
	g.controlsPanel = ui.NewControlsPanel(int32(g.screenW)-250, 10, 240, ui.DefaultKeyHints())
	g.tuningPanel = ui.NewTuningPanel(int32(g.screenW)-250, 10, 240)
	g.inspector = ui.NewInspector(int32(g.screenW)-250, 320, 240)

	g.overlays = ui.NewOverlayRegistry()
	g.overlays.SetEnabled(ui.OverlayGrid, cfg.Render.GridSpacing > 0)
	g.overlays.SetEnabled(ui.OverlaySkin, true)
	g.overlays.SetEnabled(ui.OverlayWireframe, cfg.Render.Wireframe)
	g.overlays.SetEnabled(ui.OverlayTargets, cfg.Render.ShowTarget)
	g.overlays.SetEnabled(ui.OverlayInspector, true)
	g.overlays.SetEnabled(ui.OverlayTuning, true)
}

// config returns the game's configuration.
func (g *Game) config() *config.Config {
	return g.cfg
}

// SetStatsCallback registers a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Update handles input and runs stepsPerUpdate solver ticks.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}

	if g.following && g.hasSelection {
		if head, ok := g.selectedHead(); ok {
			g.camera.Follow(float32(head.X), float32(head.Y), 0.1)
		}
	}
}

// UpdateHeadless runs stepsPerUpdate solver ticks without input or drawing.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Tick returns the number of solver ticks run so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// CreatureCount returns the number of live creatures.
func (g *Game) CreatureCount() int {
	n := 0
	query := g.creatureFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// FoldBand returns the fold band applied to every creature.
func (g *Game) FoldBand() spine.FoldBand {
	return g.band
}

// SetFoldBand switches every creature to a new fold band.
func (g *Game) SetFoldBand(b spine.FoldBand) error {
	if err := g.chain.SetFoldBand(b); err != nil {
		return err
	}
	g.band = b
	return nil
}

// Mode returns the steering mode of every creature.
func (g *Game) Mode() components.SteerMode {
	return g.mode
}

// SetMode switches every creature to a steering mode.
func (g *Game) SetMode(m components.SteerMode) {
	g.mode = m
	g.chain.SetMode(m)
}

// Groups returns every creature's chain in world order.
func (g *Game) Groups() []*spine.NodeGroup {
	var groups []*spine.NodeGroup
	query := g.creatureFilter.Query()
	for query.Next() {
		_, sp, _, _, _, _ := query.Get()
		groups = append(groups, sp.Group)
	}
	return groups
}

// Unload releases resources and closes output files.
func (g *Game) Unload() {
	g.parallel.stopWorkers()
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output files", "error", err)
		}
	}
}
