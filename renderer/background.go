package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/serpent/camera"
)

// BackgroundRenderer fills the screen and draws a world-space grid with the
// world border, so motion stays readable when the camera follows a creature.
type BackgroundRenderer struct {
	base    color.RGBA
	line    color.RGBA
	border  color.RGBA
	spacing float32
	worldW  float32
	worldH  float32
}

// NewBackgroundRenderer creates a background for a world of the given size.
// A non-positive spacing disables the grid lines.
func NewBackgroundRenderer(worldW, worldH, spacing float32, base, line color.RGBA) *BackgroundRenderer {
	return &BackgroundRenderer{
		base:    base,
		line:    line,
		border:  color.RGBA{R: line.R, G: line.G, B: line.B, A: 255},
		spacing: spacing,
		worldW:  worldW,
		worldH:  worldH,
	}
}

// GridLines returns the world coordinates of the grid lines on one axis
// that fall inside [lo, hi] and the world extent.
func GridLines(dst []float32, lo, hi, spacing, size float32) []float32 {
	if spacing <= 0 {
		return dst
	}
	lo = float32(math.Max(0, float64(lo)))
	hi = float32(math.Min(float64(size), float64(hi)))
	first := float32(math.Ceil(float64(lo/spacing))) * spacing
	for v := first; v <= hi; v += spacing {
		dst = append(dst, v)
	}
	return dst
}

// Draw clears the screen and draws the visible part of the grid.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	rl.ClearBackground(b.base)

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	// Skip lines closer than 4px on screen.
	if b.spacing*cam.Zoom >= 4 {
		for _, x := range GridLines(nil, minX, maxX, b.spacing, b.worldW) {
			x0, y0 := cam.WorldToScreen(x, 0)
			x1, y1 := cam.WorldToScreen(x, b.worldH)
			rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, b.line)
		}
		for _, y := range GridLines(nil, minY, maxY, b.spacing, b.worldH) {
			x0, y0 := cam.WorldToScreen(0, y)
			x1, y1 := cam.WorldToScreen(b.worldW, y)
			rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, b.line)
		}
	}

	x0, y0 := cam.WorldToScreen(0, 0)
	x1, y1 := cam.WorldToScreen(b.worldW, b.worldH)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 2, b.border)
}
