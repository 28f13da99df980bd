package systems

import "gonum.org/v1/gonum/spatial/r2"

// Rect is an axis-aligned rectangle in world coordinates.
type Rect struct {
	Min, Max r2.Vec
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p r2.Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Inset shrinks the rectangle by m on every side. It never inverts.
func (r Rect) Inset(m float64) Rect {
	out := Rect{
		Min: r2.Vec{X: r.Min.X + m, Y: r.Min.Y + m},
		Max: r2.Vec{X: r.Max.X - m, Y: r.Max.Y - m},
	}
	c := r.Center()
	if out.Min.X > out.Max.X {
		out.Min.X, out.Max.X = c.X, c.X
	}
	if out.Min.Y > out.Max.Y {
		out.Min.Y, out.Max.Y = c.Y, c.Y
	}
	return out
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() r2.Vec {
	return r2.Scale(0.5, r2.Add(r.Min, r.Max))
}
