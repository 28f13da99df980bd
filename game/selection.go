package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/serpent/spine"
	"github.com/pthm-cable/serpent/systems"
	"github.com/pthm-cable/serpent/ui"
)

// selectRadius is how far (world units) outside a node's size circle a
// click still selects its creature.
const selectRadius = 8.0

// pickCellSize is the cell size of the node picking grid.
const pickCellSize = 48.0

// selectAt selects the creature with a node under p, preferring the node
// whose centre is closest. Clicking empty space clears the selection.
func (g *Game) selectAt(p r2.Vec) {
	g.picker.Clear()
	var maxSize float64
	query := g.creatureFilter.Query()
	for query.Next() {
		_, sp, _, _, _, _ := query.Get()
		g.picker.InsertGroup(query.Entity(), sp.Group)
		for _, n := range sp.Group.Nodes() {
			maxSize = math.Max(maxSize, n.Size)
		}
	}

	hit, found := g.picker.Nearest(p, selectRadius, maxSize)
	if found {
		g.selected = hit.E
	}
	g.hasSelection = found
	if !found {
		g.following = false
	}
}

// selectNext cycles the selection through creatures in world order,
// wrapping after the last.
func (g *Game) selectNext() {
	var entities []ecs.Entity
	query := g.creatureFilter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	if len(entities) == 0 {
		g.hasSelection = false
		return
	}

	next := 0
	if g.hasSelection {
		for i, e := range entities {
			if e == g.selected {
				next = (i + 1) % len(entities)
				break
			}
		}
	}
	g.selected = entities[next]
	g.hasSelection = true
}

// selectedHead returns the head position of the selected creature.
func (g *Game) selectedHead() (r2.Vec, bool) {
	if !g.hasSelection || !g.world.Alive(g.selected) {
		return r2.Vec{}, false
	}
	_, sp, _, _, _, _ := g.creatureMapper.Get(g.selected)
	return sp.Group.Head().Position, true
}

// inspectorData gathers the inspector view of the selected creature.
func (g *Game) inspectorData() (*ui.InspectorData, bool) {
	if !g.hasSelection || !g.world.Alive(g.selected) {
		return nil, false
	}
	id, sp, _, steer, motion, look := g.creatureMapper.Get(g.selected)
	group := sp.Group

	g.bendScratch = systems.JointBends(group, g.bendScratch[:0])
	var maxBend float64
	for _, b := range g.bendScratch {
		maxBend = math.Max(maxBend, b)
	}

	return &ui.InspectorData{
		Name:        id.Name,
		Mode:        steer.Mode.String(),
		Nodes:       group.TotalNodes(),
		Speed:       group.Speed,
		Heading:     spine.Degrees(group.Heading(0)),
		Travel:      motion.Travel,
		Corrections: motion.TotalCorrections,
		Last:        motion.Last.Last,
		MaxBend:     maxBend,
		Stretch:     systems.Stretch(group),
		Fill:        look.Fill,
		Band:        group.FoldBand(),
	}, true
}
