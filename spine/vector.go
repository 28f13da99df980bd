// Package spine solves a chain of distance-constrained nodes that follows a
// moving target, and derives the skin contour drawn around it.
//
// Coordinates are screen coordinates: x grows to the right and y grows
// downward. Angles returned by the package are measured the way they look on
// screen, counter-clockwise from +x.
package spine

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Magnitude returns the Euclidean length of v.
func Magnitude(v r2.Vec) float64 {
	return r2.Norm(v)
}

// Normalize returns v scaled to unit length.
// A zero vector normalizes to the zero vector instead of NaN.
func Normalize(v r2.Vec) r2.Vec {
	m := Magnitude(v)
	if m == 0 {
		return r2.Vec{}
	}
	return r2.Vec{X: v.X / m, Y: v.Y / m}
}

// Scale multiplies each component of v by s.
func Scale(v r2.Vec, s float64) r2.Vec {
	return r2.Scale(s, v)
}

// Subtract returns a - b.
func Subtract(a, b r2.Vec) r2.Vec {
	return r2.Sub(a, b)
}

// Dot returns the dot product of a and b.
func Dot(a, b r2.Vec) float64 {
	return r2.Dot(a, b)
}

// VectorFromPoints returns the displacement from p1 to p2.
func VectorFromPoints(p1, p2 r2.Vec) r2.Vec {
	return r2.Sub(p2, p1)
}

// cosinePrecision is the step the cosine ratio is rounded to before acos.
const cosinePrecision = 1e8

// AngleBetween returns the unsigned angle between a and b in radians, in [0, pi].
// The cosine ratio is rounded to 8 decimals and clamped to [-1, 1], so
// parallel and anti-parallel vectors give exactly 0 and pi. Returns 0 if
// either vector has zero length.
func AngleBetween(a, b r2.Vec) float64 {
	denom := Magnitude(a) * Magnitude(b)
	if denom == 0 {
		return 0
	}
	ratio := math.Round(Dot(a, b)/denom*cosinePrecision) / cosinePrecision
	return math.Acos(clampUnit(ratio))
}

// PointOnCircle returns the point at angle (radians, screen convention) on the
// circle of the given radius around center. The y term is negated because
// screen y grows downward.
func PointOnCircle(center r2.Vec, radius, angle float64) r2.Vec {
	return r2.Vec{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y - radius*math.Sin(angle),
	}
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// screenAngle returns the on-screen heading of a unit direction in (0, 2pi].
// Due right maps to 2pi, which callers fold to 0 when remapping to degrees.
func screenAngle(dir r2.Vec) float64 {
	angle := math.Acos(clampUnit(dir.X))
	if dir.Y < 0 {
		angle = 2*math.Pi - angle
	}
	return math.Abs(2*math.Pi - angle)
}

// remapDegrees folds an angle in [0, 360] into (-180, 180].
func remapDegrees(deg float64) float64 {
	if deg > 180 {
		return deg - 360
	}
	return deg
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
