package components

import "fmt"

// String returns the display name for a SteerMode.
func (m SteerMode) String() string {
	names := SteerModeNames()
	if int(m) < len(names) {
		return names[m]
	}
	return "unknown"
}

// SteerModeNames returns the display names for all steering modes.
// The order matches the SteerMode constants and the config target modes.
func SteerModeNames() []string {
	return []string{"pointer", "wander", "orbit", "script"}
}

// SteerModeCount returns the number of steering modes.
func SteerModeCount() int {
	return len(SteerModeNames())
}

// ParseSteerMode converts a config mode name into a SteerMode.
func ParseSteerMode(name string) (SteerMode, error) {
	for i, n := range SteerModeNames() {
		if n == name {
			return SteerMode(i), nil
		}
	}
	return SteerPointer, fmt.Errorf("unknown steering mode %q", name)
}

// Next cycles to the following mode. Pointer mode is skipped when headless.
func (m SteerMode) Next(headless bool) SteerMode {
	n := SteerMode((int(m) + 1) % SteerModeCount())
	if headless && n == SteerPointer {
		n++
	}
	return n
}
