package sim

import (
	"testing"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/telemetry"
)

func TestRunFlushesWindows(t *testing.T) {
	tests := []struct {
		name string
		mode components.SteerMode
	}{
		{"wander", components.SteerWander},
		{"orbit", components.SteerOrbit},
		{"pointer falls through", components.SteerPointer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load("")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			cfg.Telemetry.StatsWindow = 10

			var windows []telemetry.WindowStats
			r, err := NewRun(cfg, 1, tt.mode, func(s telemetry.WindowStats) {
				windows = append(windows, s)
			})
			if err != nil {
				t.Fatalf("NewRun: %v", err)
			}

			for r.Tick() < 35 {
				r.Step()
			}

			if len(windows) != 3 {
				t.Fatalf("windows = %d, want 3", len(windows))
			}
			for i, w := range windows {
				if w.Ticks != 10 {
					t.Errorf("window %d ticks = %d, want 10", i, w.Ticks)
				}
				if w.Creatures != len(cfg.Creatures) {
					t.Errorf("window %d creatures = %d, want %d", i, w.Creatures, len(cfg.Creatures))
				}
			}
			if got := windows[2].WindowEndTick; got != 30 {
				t.Errorf("last window end = %d, want 30", got)
			}
			if r.Last().Creatures != len(cfg.Creatures) {
				t.Errorf("Last().Creatures = %d, want %d", r.Last().Creatures, len(cfg.Creatures))
			}
			if got := len(r.Groups()); got != len(cfg.Creatures) {
				t.Errorf("Groups = %d, want %d", got, len(cfg.Creatures))
			}
		})
	}
}

func TestRunWithoutCallback(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Telemetry.StatsWindow = 1

	r, err := NewRun(cfg, 7, components.SteerScript, nil)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	for i := 0; i < 5; i++ {
		r.Step()
	}
	if r.Tick() != 5 {
		t.Errorf("Tick = %d, want 5", r.Tick())
	}
}
