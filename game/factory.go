package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/serpent/sim"
)

// spawnCreatures creates every configured creature.
func (g *Game) spawnCreatures() error {
	return sim.SpawnAll(g.creatureMapper, g.config().Creatures, g.band, g.mode)
}

// resetCreatures removes every creature and rebuilds them at their starting
// positions with the current fold band and speed override.
func (g *Game) resetCreatures() error {
	var entities []ecs.Entity
	query := g.creatureFilter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	for _, e := range entities {
		g.world.RemoveEntity(e)
	}
	g.hasSelection = false

	if err := g.spawnCreatures(); err != nil {
		return err
	}
	if g.speedOverride > 0 {
		g.chain.SetSpeed(g.speedOverride)
	}
	return nil
}
