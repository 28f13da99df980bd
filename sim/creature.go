// Package sim builds creatures from configuration and runs the solver
// without a window.
package sim

import (
	"fmt"
	"image/color"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/spine"
)

// CreatureMap creates creature entities with all their components.
type CreatureMap = ecs.Map6[
	components.Identity,
	components.Spine,
	components.Target,
	components.Steering,
	components.Motion,
	components.Appearance,
]

// CreatureFilter queries creature entities.
type CreatureFilter = ecs.Filter6[
	components.Identity,
	components.Spine,
	components.Target,
	components.Steering,
	components.Motion,
	components.Appearance,
]

// NewCreatureMap returns a creature map for world.
func NewCreatureMap(world *ecs.World) *CreatureMap {
	return ecs.NewMap6[
		components.Identity,
		components.Spine,
		components.Target,
		components.Steering,
		components.Motion,
		components.Appearance,
	](world)
}

// NewCreatureFilter returns a creature filter for world.
func NewCreatureFilter(world *ecs.World) *CreatureFilter {
	return ecs.NewFilter6[
		components.Identity,
		components.Spine,
		components.Target,
		components.Steering,
		components.Motion,
		components.Appearance,
	](world)
}

// BuildGroup assembles a chain from its configuration: the head, every body
// run in order, then the tail if one is configured.
func BuildGroup(cc config.CreatureConfig, band spine.FoldBand) (*spine.NodeGroup, error) {
	start := r2.Vec{X: cc.Start.X, Y: cc.Start.Y}
	g, err := spine.NewNodeGroup(cc.Speed, cc.Head.Size, cc.Head.ConstraintRadius, start, cc.Head.ExtraAngles, spine.WithFoldBand(band))
	if err != nil {
		return nil, err
	}

	for ri, run := range cc.Body {
		for i := 0; i < run.Count; i++ {
			if err := g.AttachNewNode(run.ConstraintRadius, run.SizeAt(i)); err != nil {
				return nil, fmt.Errorf("body run %d node %d: %w", ri, i, err)
			}
		}
	}

	if cc.Tail != nil {
		if err := g.AttachTailNode(cc.Tail.ConstraintRadius, cc.Tail.Size, cc.Tail.ExtraAngles); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// RGBA converts a configured color.
func RGBA(c config.ColorConfig) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// SpawnCreature builds one configured creature and adds it to the world.
func SpawnCreature(m *CreatureMap, index int, cc config.CreatureConfig, band spine.FoldBand, mode components.SteerMode) (ecs.Entity, error) {
	group, err := BuildGroup(cc, band)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("creature %d (%s): %w", index, cc.Name, err)
	}

	id := components.Identity{Name: cc.Name, Index: index}
	sp := components.Spine{Group: group}
	target := components.Target{Point: group.Head().Position}
	steer := components.Steering{Mode: mode, Seed: float64(index) * 1000}
	motion := components.Motion{}
	look := components.Appearance{Fill: RGBA(cc.Fill), Outline: RGBA(cc.Outline)}

	return m.NewEntity(&id, &sp, &target, &steer, &motion, &look), nil
}

// SpawnAll creates every configured creature.
func SpawnAll(m *CreatureMap, creatures []config.CreatureConfig, band spine.FoldBand, mode components.SteerMode) error {
	for i, cc := range creatures {
		if _, err := SpawnCreature(m, i, cc, band, mode); err != nil {
			return err
		}
	}
	return nil
}
