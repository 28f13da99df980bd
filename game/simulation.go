package game

import (
	"time"

	"github.com/pthm-cable/serpent/telemetry"
)

// simulationStep runs a single solver tick: steer every head, solve every
// chain, then sample telemetry.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseSteering)
	start := time.Now()
	g.chain.Steer()
	g.perf.Record(telemetry.PhaseSteering, time.Since(start))

	g.perfCollector.StartPhase(telemetry.PhaseSolve)
	start = time.Now()
	if g.lastSummary.Creatures >= parallelThreshold {
		g.lastSummary = g.solveParallel()
	} else {
		g.lastSummary = g.chain.Solve()
	}
	g.perf.Record(telemetry.PhaseSolve, time.Since(start))

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	start = time.Now()
	g.tick++
	g.sampler.Record(g.creatureFilter, g.lastSummary)
	g.flushTelemetry()
	g.logProgress()
	g.perf.Record(telemetry.PhaseTelemetry, time.Since(start))

	g.perfCollector.EndTick()
}
