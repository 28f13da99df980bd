package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/spine"
)

// TickSummary aggregates one solver tick across all creatures.
type TickSummary struct {
	Creatures   int
	Corrections int
	HeadTravel  float64
	MaxStretch  float64 // worst |link length - constraint radius| seen
}

// ChainSystem sets each creature's target and advances its spine.
// Creatures are independent; each chain is still solved head to tail.
type ChainSystem struct {
	steering *SteeringSystem
	filter   *ecs.Filter4[components.Spine, components.Target, components.Steering, components.Motion]
}

// NewChainSystem creates a chain system over the given world.
func NewChainSystem(world *ecs.World, steering *SteeringSystem) *ChainSystem {
	return &ChainSystem{
		steering: steering,
		filter:   ecs.NewFilter4[components.Spine, components.Target, components.Steering, components.Motion](world),
	}
}

// Steer computes the next target for every creature.
func (c *ChainSystem) Steer() {
	query := c.filter.Query()
	for query.Next() {
		sp, target, steer, _ := query.Get()
		target.Point = c.steering.TargetFor(steer, sp.Group.Head().Position)
	}
}

// Solve advances every creature one tick toward its current target.
func (c *ChainSystem) Solve() TickSummary {
	var sum TickSummary
	query := c.filter.Query()
	for query.Next() {
		sp, target, _, motion := query.Get()
		sp.Group.SetTarget(target.Point)
		r := sp.Group.Advance()
		motion.Record(r)

		sum.Creatures++
		sum.Corrections += r.Corrections
		sum.HeadTravel += r.HeadStep
		if s := Stretch(sp.Group); s > sum.MaxStretch {
			sum.MaxStretch = s
		}
	}
	return sum
}

// SetFoldBand applies a fold band to every creature.
func (c *ChainSystem) SetFoldBand(b spine.FoldBand) error {
	query := c.filter.Query()
	for query.Next() {
		sp, _, _, _ := query.Get()
		if err := sp.Group.SetFoldBand(b); err != nil {
			query.Close()
			return err
		}
	}
	return nil
}

// SetSpeed applies a head speed to every creature.
func (c *ChainSystem) SetSpeed(speed float64) {
	query := c.filter.Query()
	for query.Next() {
		sp, _, _, _ := query.Get()
		sp.Group.Speed = speed
	}
}

// SetMode switches every creature to a steering mode.
func (c *ChainSystem) SetMode(mode components.SteerMode) {
	query := c.filter.Query()
	for query.Next() {
		_, _, steer, _ := query.Get()
		if steer.Mode != mode {
			steer.Mode = mode
			steer.Clock = 0
		}
	}
}

// JointBends appends the absolute bend (degrees) of every joint of g to dst.
// Bends past 180 are folded so a straight joint always reads as 0.
func JointBends(g *spine.NodeGroup, dst []float64) []float64 {
	for i := 1; i < g.TotalNodes(); i++ {
		b := math.Abs(g.Bend(i))
		if b > 180 {
			b = 360 - b
		}
		dst = append(dst, b)
	}
	return dst
}

// Stretch returns the largest deviation of any link from its constraint radius.
func Stretch(g *spine.NodeGroup) float64 {
	var worst float64
	prev := g.Head()
	for i := 1; i < g.TotalNodes(); i++ {
		cur := g.Node(i)
		d := spine.Magnitude(spine.Subtract(cur.Position, prev.Position))
		if e := math.Abs(d - prev.ConstraintRadius); e > worst {
			worst = e
		}
		prev = cur
	}
	return worst
}
