// Package config provides configuration loading and access for the animation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/serpent/spine"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Target modes.
const (
	TargetPointer = "pointer" // follow the mouse
	TargetWander  = "wander"  // drift on a noise field
	TargetOrbit   = "orbit"   // circle a fixed centre
	TargetScript  = "script"  // visit a fixed list of points
)

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Simulation SimulationConfig `yaml:"simulation"`
	Fold       FoldConfig       `yaml:"fold"`
	Target     TargetConfig     `yaml:"target"`
	Creatures  []CreatureConfig `yaml:"creatures"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds world dimensions. Zero means "same as the screen".
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SimulationConfig holds tick scheduling parameters.
type SimulationConfig struct {
	StepsPerUpdate int   `yaml:"steps_per_update"` // solver ticks per frame
	Seed           int64 `yaml:"seed"`             // noise seed (0 = time-based)
}

// FoldConfig holds the joint fold band in degrees. Max must equal 360-Min;
// zero means exactly that.
type FoldConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Band converts the config into a solver fold band.
func (f FoldConfig) Band() spine.FoldBand {
	if f.Max == 0 {
		return spine.NewFoldBand(f.Min)
	}
	return spine.FoldBand{Min: f.Min, Max: f.Max}
}

// TargetConfig selects how creature targets are produced.
type TargetConfig struct {
	Mode        string        `yaml:"mode"`
	ReachRadius float64       `yaml:"reach_radius"` // script waypoint is reached within this distance
	Wander      WanderConfig  `yaml:"wander"`
	Orbit       OrbitConfig   `yaml:"orbit"`
	Script      []PointConfig `yaml:"script"`
}

// WanderConfig holds noise-driven target parameters.
type WanderConfig struct {
	Frequency float64 `yaml:"frequency"` // noise-space distance per tick
	Lookahead float64 `yaml:"lookahead"` // target distance ahead of the head
	Margin    float64 `yaml:"margin"`    // turn back toward the centre inside this border
}

// OrbitConfig holds circular target parameters.
type OrbitConfig struct {
	Radius float64 `yaml:"radius"`
	Lead   float64 `yaml:"lead"` // radians the target runs ahead of the head
}

// PointConfig is a 2D point.
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ColorConfig is an RGBA color.
type ColorConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// CreatureConfig describes one chain: head, body runs and an optional tail.
type CreatureConfig struct {
	Name    string             `yaml:"name"`
	Speed   float64            `yaml:"speed"`
	Start   PointConfig        `yaml:"start"`
	Head    HeadConfig         `yaml:"head"`
	Body    []SegmentRunConfig `yaml:"body"`
	Tail    *HeadConfig        `yaml:"tail"`
	Fill    ColorConfig        `yaml:"fill"`
	Outline ColorConfig        `yaml:"outline"`
}

// HeadConfig describes an end node (head or tail).
type HeadConfig struct {
	Size             float64   `yaml:"size"`
	ConstraintRadius float64   `yaml:"constraint_radius"`
	ExtraAngles      []float64 `yaml:"extra_angles"` // ascending, degrees from the node's heading
}

// SegmentRunConfig describes Count body nodes sharing a constraint radius.
// Node sizes start at Size and shrink by Taper every TaperEvery nodes.
type SegmentRunConfig struct {
	Count            int     `yaml:"count"`
	ConstraintRadius float64 `yaml:"constraint_radius"`
	Size             float64 `yaml:"size"`
	Taper            float64 `yaml:"taper"`
	TaperEvery       int     `yaml:"taper_every"`
}

// SizeAt returns the size of the i-th node of the run.
func (r SegmentRunConfig) SizeAt(i int) float64 {
	every := r.TaperEvery
	if every < 1 {
		every = 1
	}
	return r.Size - r.Taper*float64(i/every)
}

// NodeCount returns the total nodes the creature will have, head and tail included.
func (c CreatureConfig) NodeCount() int {
	n := 1
	for _, run := range c.Body {
		n += run.Count
	}
	if c.Tail != nil {
		n++
	}
	return n
}

// RenderConfig holds drawing parameters.
type RenderConfig struct {
	Background   ColorConfig `yaml:"background"`
	GridColor    ColorConfig `yaml:"grid_color"`
	GridSpacing  float64     `yaml:"grid_spacing"` // world units between grid lines (0 = no grid)
	OutlineWidth float64     `yaml:"outline_width"`
	EyeRadius    float64     `yaml:"eye_radius"`
	EyeColor     ColorConfig `yaml:"eye_color"`
	Wireframe    bool        `yaml:"wireframe"`   // draw node circles and link points
	ShowTarget   bool        `yaml:"show_target"` // draw the target marker
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // ticks per stats record
	PerfWindow  int `yaml:"perf_window"`  // ticks in the perf rolling window
	LogInterval int `yaml:"log_interval"` // ticks between log lines with -log-stats
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW    float64 // effective world width
	WorldH    float64 // effective world height
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file; lists are replaced whole.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the solver cannot build or would draw as a
// self-intersecting skin.
func (c *Config) Validate() error {
	if err := c.Fold.Band().Validate(); err != nil {
		return fmt.Errorf("fold: %w", err)
	}
	switch c.Target.Mode {
	case TargetPointer, TargetWander, TargetOrbit:
	case TargetScript:
		if len(c.Target.Script) == 0 {
			return fmt.Errorf("target: script mode needs at least one point")
		}
	default:
		return fmt.Errorf("target: unknown mode %q", c.Target.Mode)
	}
	if len(c.Creatures) == 0 {
		return fmt.Errorf("creatures: at least one creature is required")
	}
	for i := range c.Creatures {
		if err := c.Creatures[i].validate(); err != nil {
			return fmt.Errorf("creature %d (%s): %w", i, c.Creatures[i].Name, err)
		}
	}
	return nil
}

func (c *CreatureConfig) validate() error {
	if c.Speed < 0 {
		return fmt.Errorf("%w: %g", spine.ErrInvalidSpeed, c.Speed)
	}
	if err := c.Head.validate(); err != nil {
		return fmt.Errorf("head: %w", err)
	}
	for i, run := range c.Body {
		if run.Count < 0 {
			return fmt.Errorf("body run %d: negative count", i)
		}
		if run.Count == 0 {
			continue
		}
		last := run.SizeAt(run.Count - 1)
		if run.ConstraintRadius <= 0 || last <= 0 {
			return fmt.Errorf("body run %d: %w: radius %g, smallest size %g",
				i, spine.ErrInvalidDimension, run.ConstraintRadius, last)
		}
	}
	if c.Tail != nil {
		if err := c.Tail.validate(); err != nil {
			return fmt.Errorf("tail: %w", err)
		}
		for _, a := range c.Tail.ExtraAngles {
			if a <= 0 {
				return fmt.Errorf("tail: %w: %g", spine.ErrTailAnglesNotPositive, a)
			}
		}
	}
	return nil
}

func (h *HeadConfig) validate() error {
	if h.Size <= 0 || h.ConstraintRadius <= 0 {
		return fmt.Errorf("%w: radius %g, size %g", spine.ErrInvalidDimension, h.ConstraintRadius, h.Size)
	}
	for i := 1; i < len(h.ExtraAngles); i++ {
		if h.ExtraAngles[i] <= h.ExtraAngles[i-1] {
			return fmt.Errorf("%w: %g follows %g", spine.ErrAnglesNotAscending, h.ExtraAngles[i], h.ExtraAngles[i-1])
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW = float64(worldW)
	c.Derived.WorldH = float64(worldH)

	if c.Simulation.StepsPerUpdate < 1 {
		c.Simulation.StepsPerUpdate = 1
	}
	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 60
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
