package game

import "log/slog"

// logProgress writes a progress line every telemetry.log_interval ticks when
// stats logging is on.
func (g *Game) logProgress() {
	interval := g.config().Telemetry.LogInterval
	if !g.logStats || interval <= 0 || g.tick%int32(interval) != 0 {
		return
	}

	slog.Info("progress",
		"tick", g.tick,
		"creatures", g.lastSummary.Creatures,
		"mode", g.mode.String(),
		"fold_min", g.band.Min,
		"fold_max", g.band.Max,
		"corrections", g.lastSummary.Corrections,
		"perf", g.perfCollector.Stats(),
	)
}
