package game

import (
	"log/slog"

	"github.com/pthm-cable/serpent/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.sampler.Collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.sampler.Collector.Flush(g.tick, g.lastSummary.Creatures)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	if g.snapshotDir == "" {
		slog.Warn("snapshot skipped, no snapshot directory set", "tick", g.tick)
		return
	}

	path, err := telemetry.SaveSnapshot(g.createSnapshot(bookmark), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		Seed:     g.seed,
		Tick:     g.tick,
		FoldMin:  g.band.Min,
		FoldMax:  g.band.Max,
		Bookmark: bookmark,
	}

	query := g.creatureFilter.Query()
	for query.Next() {
		id, sp, target, steer, _, _ := query.Get()

		state := telemetry.CreatureState{
			Name:    id.Name,
			Mode:    steer.Mode.String(),
			TargetX: target.Point.X,
			TargetY: target.Point.Y,
			Nodes:   make([]telemetry.NodeState, 0, sp.Group.TotalNodes()),
		}
		for _, n := range sp.Group.Nodes() {
			state.Nodes = append(state.Nodes, telemetry.NodeState{
				X:                n.Position.X,
				Y:                n.Position.Y,
				Size:             n.Size,
				ConstraintRadius: n.ConstraintRadius,
			})
		}
		snapshot.Creatures = append(snapshot.Creatures, state)
	}

	return snapshot
}
