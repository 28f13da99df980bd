package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/serpent/spine"
)

// InspectorData holds what the inspector shows about one creature.
type InspectorData struct {
	Name        string
	Mode        string
	Nodes       int
	Speed       float64
	Heading     float64 // head heading, degrees
	Travel      float64
	Corrections int
	Last        spine.Correction
	MaxBend     float64
	Stretch     float64
	Fill        rl.Color
	Band        spine.FoldBand
}

// inspectorSections describes the inspector layout.
func inspectorSections() []SectionDescriptor {
	d := func(data any) *InspectorData { return data.(*InspectorData) }
	return []SectionDescriptor{
		{
			ID: "identity",
			Fields: []FieldDescriptor{
				{ID: "name", Label: "Name", Widget: WidgetText, TextGetter: func(a any) string { return d(a).Name }},
				{ID: "mode", Label: "Steering", Widget: WidgetText, TextGetter: func(a any) string { return d(a).Mode }},
				{ID: "fill", Label: "Skin", Widget: WidgetColorSwatch, ColorGetter: func(a any) rl.Color { return d(a).Fill }},
			},
		},
		{
			ID:    "motion",
			Title: "Motion",
			Fields: []FieldDescriptor{
				{ID: "nodes", Label: "Nodes", Widget: WidgetText, Format: "%.0f", Getter: func(a any) float32 { return float32(d(a).Nodes) }},
				{ID: "speed", Label: "Speed", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 12}, Getter: func(a any) float32 { return float32(d(a).Speed) }},
				{ID: "heading", Label: "Heading", Widget: WidgetText, Format: "%.1f°", Getter: func(a any) float32 { return float32(d(a).Heading) }},
				{ID: "travel", Label: "Travel", Widget: WidgetText, Format: "%.0f", Getter: func(a any) float32 { return float32(d(a).Travel) }},
				{ID: "stretch", Label: "Link error", Widget: WidgetText, TextGetter: func(a any) string { return fmt.Sprintf("%.2g", d(a).Stretch) }},
			},
		},
		{
			ID:    "fold",
			Title: "Fold",
			Fields: []FieldDescriptor{
				{ID: "band", Label: "Band", Widget: WidgetText, TextGetter: func(a any) string {
					return fmt.Sprintf("%.0f-%.0f", d(a).Band.Min, d(a).Band.Max)
				}},
				{ID: "max_bend", Label: "Max bend", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 180}, Getter: func(a any) float32 { return float32(d(a).MaxBend) }},
				{ID: "corrections", Label: "Corrections", Widget: WidgetText, Format: "%.0f", Getter: func(a any) float32 { return float32(d(a).Corrections) }},
			},
		},
		{
			ID:      "last",
			Title:   "Last correction",
			Visible: func(a any) bool { return d(a).Corrections > 0 },
			Fields: []FieldDescriptor{
				{ID: "node", Label: "Node", Widget: WidgetText, Format: "%.0f", Getter: func(a any) float32 { return float32(d(a).Last.Node) }},
				{ID: "bend", Label: "Bend", Widget: WidgetText, Format: "%.1f°", Getter: func(a any) float32 { return float32(d(a).Last.Bend) }},
				{ID: "side", Label: "Side", Widget: WidgetText, TextGetter: func(a any) string { return d(a).Last.Side.String() }},
			},
		},
	}
}

// Inspector renders the creature inspection panel.
type Inspector struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		sections: inspectorSections(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given data.
func (ins *Inspector) Draw(data *InspectorData) {
	r := ins.renderer
	pad := r.Theme.Padding

	height := pad * 2
	for _, sd := range ins.sections {
		height += r.SectionHeight(sd, data)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + pad
	for _, sd := range ins.sections {
		y = r.DrawSection(ins.x+pad, y, sd, data, ins.width-pad*2)
	}
}
