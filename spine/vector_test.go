package spine

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestMagnitudeAndNormalize(t *testing.T) {
	v := r2.Vec{X: 3, Y: 4}
	if got := Magnitude(v); got != 5 {
		t.Errorf("Magnitude(%v) = %v, want 5", v, got)
	}

	n := Normalize(v)
	if math.Abs(n.X-0.6) > 1e-12 || math.Abs(n.Y-0.8) > 1e-12 {
		t.Errorf("Normalize(%v) = %v, want (0.6, 0.8)", v, n)
	}
}

func TestNormalizeZero(t *testing.T) {
	n := Normalize(r2.Vec{})
	if n != (r2.Vec{}) {
		t.Errorf("Normalize(0) = %v, want zero vector", n)
	}
	if math.IsNaN(n.X) || math.IsNaN(n.Y) {
		t.Error("Normalize(0) produced NaN")
	}
}

func TestScaleSubtractDot(t *testing.T) {
	a := r2.Vec{X: 1, Y: -2}
	b := r2.Vec{X: 4, Y: 5}

	if got := Scale(a, 3); got != (r2.Vec{X: 3, Y: -6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := Subtract(b, a); got != (r2.Vec{X: 3, Y: 7}) {
		t.Errorf("Subtract = %v", got)
	}
	if got := VectorFromPoints(a, b); got != (r2.Vec{X: 3, Y: 7}) {
		t.Errorf("VectorFromPoints = %v", got)
	}
	if got := Dot(a, b); got != -6 {
		t.Errorf("Dot = %v, want -6", got)
	}
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b r2.Vec
		want float64
	}{
		{"same direction", r2.Vec{X: 1}, r2.Vec{X: 5}, 0},
		{"perpendicular", r2.Vec{X: 1}, r2.Vec{Y: 2}, math.Pi / 2},
		{"opposite", r2.Vec{X: 1, Y: 1}, r2.Vec{X: -2, Y: -2}, math.Pi},
		{"opposite off axis", r2.Vec{X: 0.3, Y: 0.7}, r2.Vec{X: -0.9, Y: -2.1}, math.Pi},
		{"parallel off axis", r2.Vec{X: 0.1, Y: 0.3}, r2.Vec{X: 1.1, Y: 3.3}, 0},
		{"zero input", r2.Vec{}, r2.Vec{X: 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleBetween(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AngleBetween(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAngleBetweenDriftNeverNaN(t *testing.T) {
	// Nearly parallel vectors whose cosine ratio can round past 1.
	a := r2.Vec{X: 0.1 + 0.2, Y: 1e-17}
	b := r2.Vec{X: 0.3, Y: 0}
	for i := 0; i < 100; i++ {
		got := AngleBetween(a, b)
		if math.IsNaN(got) {
			t.Fatalf("AngleBetween(%v, %v) = NaN", a, b)
		}
		a.X *= 1.0000001
	}
}

func TestScreenAngle(t *testing.T) {
	tests := []struct {
		name string
		dir  r2.Vec
		want float64 // degrees after remap
	}{
		{"right", r2.Vec{X: 1}, 0},
		{"up on screen", r2.Vec{Y: -1}, 90},
		{"left", r2.Vec{X: -1}, 180},
		{"down on screen", r2.Vec{Y: 1}, -90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := remapDegrees(Degrees(screenAngle(tt.dir)))
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("screen angle of %v = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestPointOnCircleFlipsY(t *testing.T) {
	c := r2.Vec{X: 10, Y: 10}
	p := PointOnCircle(c, 5, math.Pi/2)
	if math.Abs(p.X-10) > 1e-9 || math.Abs(p.Y-5) > 1e-9 {
		t.Errorf("PointOnCircle at 90deg = %v, want (10, 5)", p)
	}
}
