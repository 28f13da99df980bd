package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// KeyHint is a key binding shown in the controls panel.
type KeyHint struct {
	Key    string
	Action string
}

// DefaultKeyHints lists the viewer's fixed bindings.
func DefaultKeyHints() []KeyHint {
	return []KeyHint{
		{"Space", "pause"},
		{"T", "next steering mode"},
		{", / .", "steps per frame"},
		{"Tab", "select creature"},
		{"F", "follow selection"},
		{"R", "reset creatures"},
		{"F5", "save snapshot"},
		{"Arrows", "pan"},
		{"Wheel", "zoom"},
		{"Home", "reset camera"},
		{"F11", "fullscreen"},
		{"H", "this panel"},
	}
}

// ControlsPanel lists overlay toggles and key bindings.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	hints    []KeyHint
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32, hints []KeyHint) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		hints:    hints,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the controls panel.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) {
	if !c.visible {
		return
	}

	r := c.renderer
	pad := r.Theme.Padding
	lh := r.Theme.LineHeight

	categories := overlays.Categories()
	rows := len(c.hints) + 1
	for _, cat := range categories {
		rows += len(overlays.ByCategory(cat)) + 1
	}
	r.DrawPanel(c.x, c.y, c.width, int32(rows)*lh+int32(len(categories))*4+pad*2+lh)

	x := c.x + pad
	inner := c.width - pad*2
	y := c.y + pad
	rl.DrawText("Controls", x, y, 16, rl.White)
	y += lh + 4

	for _, cat := range categories {
		y = r.DrawSectionHeader(x, y, categoryLabel(cat))
		for _, desc := range overlays.ByCategory(cat) {
			c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID), inner)
			y += lh
		}
		y += 4
	}

	y = r.DrawSectionHeader(x, y, "Keys")
	for _, h := range c.hints {
		rl.DrawText(h.Action, x+14, y, r.Theme.FontSize, r.Theme.LabelColor)
		c.drawKey(x, y, h.Key, inner)
		y += lh
	}
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	t := c.renderer.Theme

	status := rl.Color{R: 80, G: 80, B: 80, A: 255}
	name := t.LabelColor
	if enabled {
		status = t.Good
		name = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, status)
	rl.DrawText(desc.Name, x+14, y, t.FontSize, name)
	if desc.KeyLabel != "" {
		c.drawKey(x, y, desc.KeyLabel, width)
	}
}

// drawKey right-aligns a key label.
func (c *ControlsPanel) drawKey(x, y int32, key string, width int32) {
	size := c.renderer.Theme.FontSize
	text := fmt.Sprintf("[%s]", key)
	rl.DrawText(text, x+width-rl.MeasureText(text, size), y, size, rl.Color{R: 150, G: 150, B: 150, A: 255})
}

func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "panels":
		return "Panels"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
