// Package engine implements the head-pose pointer and activation core:
// it turns per-cycle landmark signal frames into a smoothed screen pointer
// and discrete activation events via gesture edges and dwell.
package engine

import "time"

// ClickMethod selects which facial gesture triggers an activation.
type ClickMethod string

const (
	// ClickBlink activates when closed eyes open again.
	ClickBlink ClickMethod = "blink"
	// ClickMouth activates when an opened mouth closes again.
	ClickMouth ClickMethod = "mouth"
)

// Calibration bounds. Out-of-range values are clamped, never rejected.
const (
	MinSensitivity = 0.1
	MaxSensitivity = 10.0
	MaxSmoothing   = 0.95
	MinDwellMs     = 200
	MaxDwellMs     = 10000
)

// Calibration holds the user-tunable parameters of the engine. It is owned
// by the host and may be swapped between ticks at any time.
type Calibration struct {
	// Sensitivity amplifies head motion into cursor travel.
	Sensitivity float64 `json:"sensitivity"`
	// Smoothing is the exponential filter factor in [0,1); higher is
	// smoother but laggier.
	Smoothing float64 `json:"smoothing"`
	// DwellTimeMs is how long a target must stay hovered before the dwell
	// path activates it.
	DwellTimeMs int `json:"dwellTimeMs"`
	// ClickMethod selects the gesture activation path.
	ClickMethod ClickMethod `json:"clickMethod"`
}

// DefaultCalibration returns a Calibration with sensible default values.
func DefaultCalibration() Calibration {
	return Calibration{
		Sensitivity: 1.5,
		Smoothing:   0.6,
		DwellTimeMs: 1000,
		ClickMethod: ClickBlink,
	}
}

// Clamp returns a copy of the calibration with every field forced into its
// documented bounds. Bad configuration degrades, it never crashes.
func (c Calibration) Clamp() Calibration {
	if c.Sensitivity < MinSensitivity {
		c.Sensitivity = MinSensitivity
	}
	if c.Sensitivity > MaxSensitivity {
		c.Sensitivity = MaxSensitivity
	}
	if c.Smoothing < 0 {
		c.Smoothing = 0
	}
	if c.Smoothing > MaxSmoothing {
		c.Smoothing = MaxSmoothing
	}
	if c.DwellTimeMs < MinDwellMs {
		c.DwellTimeMs = MinDwellMs
	}
	if c.DwellTimeMs > MaxDwellMs {
		c.DwellTimeMs = MaxDwellMs
	}
	if c.ClickMethod != ClickBlink && c.ClickMethod != ClickMouth {
		c.ClickMethod = ClickBlink
	}
	return c
}

// DwellTime returns the dwell duration as a time.Duration.
func (c Calibration) DwellTime() time.Duration {
	return time.Duration(c.DwellTimeMs) * time.Millisecond
}
