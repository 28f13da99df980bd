package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/serpent/spine"
)

// NodeRef locates one node of one creature.
type NodeRef struct {
	E     ecs.Entity
	Index int
	Pos   r2.Vec
	Size  float64
}

// Hit is a node found by a grid query.
type Hit struct {
	NodeRef
	Dist float64
}

// SpatialGrid buckets chain nodes into uniform cells over the world for
// point queries. Positions outside the world clamp to the border cells.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]NodeRef
}

// NewSpatialGrid creates a grid covering width x height with the given
// cell size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 32
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]NodeRef, cols*rows),
	}
}

// Clear empties all cells, keeping their backing arrays.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a single node.
func (g *SpatialGrid) Insert(ref NodeRef) {
	idx := g.cellIndex(ref.Pos)
	g.cells[idx] = append(g.cells[idx], ref)
}

// InsertGroup adds every node of group under entity e.
func (g *SpatialGrid) InsertGroup(e ecs.Entity, group *spine.NodeGroup) {
	for i, n := range group.Nodes() {
		g.Insert(NodeRef{E: e, Index: i, Pos: n.Position, Size: n.Size})
	}
}

// QueryInto appends to dst every node whose size circle, grown by slack,
// contains p.
func (g *SpatialGrid) QueryInto(dst []Hit, p r2.Vec, slack, maxSize float64) []Hit {
	reach := maxSize + slack
	cellRadius := int(reach/g.cellSize) + 1
	center := g.cellIndex(p)
	cc, cr := center%g.cols, center/g.cols

	for dr := -cellRadius; dr <= cellRadius; dr++ {
		row := cr + dr
		if row < 0 || row >= g.rows {
			continue
		}
		for dc := -cellRadius; dc <= cellRadius; dc++ {
			col := cc + dc
			if col < 0 || col >= g.cols {
				continue
			}
			for _, ref := range g.cells[row*g.cols+col] {
				d := spine.Magnitude(spine.Subtract(p, ref.Pos))
				if d <= ref.Size+slack {
					dst = append(dst, Hit{NodeRef: ref, Dist: d})
				}
			}
		}
	}
	return dst
}

// Nearest returns the hit whose node centre is closest to p.
func (g *SpatialGrid) Nearest(p r2.Vec, slack, maxSize float64) (Hit, bool) {
	var best Hit
	found := false
	for _, h := range g.QueryInto(nil, p, slack, maxSize) {
		if !found || h.Dist < best.Dist {
			best = h
			found = true
		}
	}
	return best, found
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(p r2.Vec) int {
	col := int(p.X / g.cellSize)
	row := int(p.Y / g.cellSize)

	// Clamp to valid range
	if p.X < 0 || col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if p.Y < 0 || row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return row*g.cols + col
}
