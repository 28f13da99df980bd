// Package renderer draws solved chains with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/serpent/camera"
	"github.com/pthm-cable/serpent/spine"
)

// SkinStyle holds per-creature drawing parameters.
type SkinStyle struct {
	Fill         color.RGBA
	Outline      color.RGBA
	OutlineWidth float32
	EyeRadius    float32
	EyeColor     color.RGBA
}

// SkinRenderer fills and outlines chain contours. Buffers are reused across
// frames.
type SkinRenderer struct {
	contour []r2.Vec
	screen  []rl.Vector2
	tris    [][3]int
}

// NewSkinRenderer creates a new skin renderer.
func NewSkinRenderer() *SkinRenderer {
	return &SkinRenderer{}
}

// project converts the contour to screen space.
func (r *SkinRenderer) project(g *spine.NodeGroup, cam *camera.Camera) {
	r.contour = g.AppendContour(r.contour[:0])
	r.screen = r.screen[:0]
	for _, p := range r.contour {
		sx, sy := cam.WorldToScreen(float32(p.X), float32(p.Y))
		r.screen = append(r.screen, rl.Vector2{X: sx, Y: sy})
	}
}

// Draw fills the skin, traces its outline and draws the eyes.
func (r *SkinRenderer) Draw(g *spine.NodeGroup, style SkinStyle, cam *camera.Camera) {
	r.project(g, cam)
	if len(r.screen) < 3 {
		return
	}

	r.tris = g.ContourLayout().Triangles(r.tris[:0])
	for _, tri := range r.tris {
		drawTriangle(r.screen[tri[0]], r.screen[tri[1]], r.screen[tri[2]], style.Fill)
	}

	width := style.OutlineWidth * cam.Zoom
	if width > 0 {
		n := len(r.screen)
		for i := range r.screen {
			rl.DrawLineEx(r.screen[i], r.screen[(i+1)%n], width, style.Outline)
		}
	}

	r.drawEyes(g, style, cam)
}

func (r *SkinRenderer) drawEyes(g *spine.NodeGroup, style SkinStyle, cam *camera.Camera) {
	if style.EyeRadius <= 0 {
		return
	}
	left, right := g.EyePositions()
	for _, e := range []r2.Vec{left, right} {
		sx, sy := cam.WorldToScreen(float32(e.X), float32(e.Y))
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, style.EyeRadius*cam.Zoom, style.EyeColor)
	}
}

// drawTriangle fills a triangle in either winding. Raylib culls clockwise
// triangles, so the vertices are swapped when needed.
func drawTriangle(a, b, c rl.Vector2, col color.RGBA) {
	cross := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
	if cross > 0 {
		b, c = c, b
	}
	rl.DrawTriangle(a, b, c, col)
}
