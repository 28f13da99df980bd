package game

import (
	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/telemetry"
)

// Options configures game initialization.
type Options struct {
	Config         *config.Config              // nil = config.Cfg()
	StatsCallback  func(telemetry.WindowStats) // called with every flushed window
	Seed           int64                       // noise seed for wander steering
	LogStats       bool                        // write window stats and bookmarks through slog
	OutputDir      string                      // CSV output directory ("" = disabled)
	SnapshotDir    string                      // snapshot directory ("" = disabled)
	Headless       bool                        // no window, no pointer
	StepsPerUpdate int                         // solver ticks per Update call (0 = use config)
	TargetMode     string                      // overrides the configured target mode ("" = use config)
}

// MaxStepsPerUpdate bounds the steps-per-update control.
const MaxStepsPerUpdate = 10

// parallelThreshold is the minimum creature count to solve chains on the
// worker pool. Below this, a single goroutine is faster.
const parallelThreshold = 8
