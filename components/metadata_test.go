package components

import "testing"

func TestParseSteerMode(t *testing.T) {
	for i, name := range SteerModeNames() {
		m, err := ParseSteerMode(name)
		if err != nil {
			t.Fatalf("ParseSteerMode(%q): %v", name, err)
		}
		if int(m) != i || m.String() != name {
			t.Errorf("ParseSteerMode(%q) = %d/%s", name, m, m)
		}
	}
	if _, err := ParseSteerMode("teleport"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if got := SteerMode(99).String(); got != "unknown" {
		t.Errorf("String = %q, want unknown", got)
	}
}

func TestSteerModeNext(t *testing.T) {
	tests := []struct {
		from     SteerMode
		headless bool
		want     SteerMode
	}{
		{SteerPointer, false, SteerWander},
		{SteerOrbit, false, SteerScript},
		{SteerScript, false, SteerPointer},
		{SteerScript, true, SteerWander},
		{SteerWander, true, SteerOrbit},
	}
	for _, tt := range tests {
		if got := tt.from.Next(tt.headless); got != tt.want {
			t.Errorf("%s.Next(%v) = %s, want %s", tt.from, tt.headless, got, tt.want)
		}
	}
}
