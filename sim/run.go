package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/spine"
	"github.com/pthm-cable/serpent/systems"
	"github.com/pthm-cable/serpent/telemetry"
)

// Run steps every configured creature on a single goroutine and reports
// each completed stats window. Runs built from separate configs are
// independent and may step concurrently.
type Run struct {
	creatures *CreatureFilter
	chain     *systems.ChainSystem
	sampler   *Sampler
	onWindow  func(telemetry.WindowStats)

	tick int32
	last systems.TickSummary
}

// NewRun spawns cfg's creatures steered by mode. Pointer steering has no
// pointer without a window, so it falls through to the next mode.
func NewRun(cfg *config.Config, seed int64, mode components.SteerMode, onWindow func(telemetry.WindowStats)) (*Run, error) {
	if mode == components.SteerPointer {
		mode = mode.Next(true)
	}

	world := ecs.NewWorld()
	if err := SpawnAll(NewCreatureMap(world), cfg.Creatures, cfg.Fold.Band(), mode); err != nil {
		return nil, err
	}

	steering := systems.NewSteeringSystem(cfg.Target, cfg.Derived.WorldW, cfg.Derived.WorldH, seed)
	return &Run{
		creatures: NewCreatureFilter(world),
		chain:     systems.NewChainSystem(world, steering),
		sampler:   NewSampler(cfg.Telemetry.StatsWindow),
		onWindow:  onWindow,
	}, nil
}

// Step runs one tick: steer, solve, sample, and flush a finished window.
func (r *Run) Step() {
	r.chain.Steer()
	r.last = r.chain.Solve()
	r.tick++

	r.sampler.Record(r.creatures, r.last)
	if r.sampler.Collector.ShouldFlush(r.tick) {
		stats := r.sampler.Collector.Flush(r.tick, r.last.Creatures)
		if r.onWindow != nil {
			r.onWindow(stats)
		}
	}
}

// Tick returns the number of ticks run so far.
func (r *Run) Tick() int32 {
	return r.tick
}

// Last returns the summary of the most recent tick.
func (r *Run) Last() systems.TickSummary {
	return r.last
}

// Groups returns every creature's chain in world order.
func (r *Run) Groups() []*spine.NodeGroup {
	var groups []*spine.NodeGroup
	query := r.creatures.Query()
	for query.Next() {
		_, sp, _, _, _, _ := query.Get()
		groups = append(groups, sp.Group)
	}
	return groups
}
