package engine

import (
	"time"

	"github.com/ayusman/drishti/internal/landmark"
)

// Gesture detection constants.
const (
	// GestureThreshold classifies a gesture score as engaged. Deliberately
	// low: a missed click frustrates more than an accidental one.
	GestureThreshold = 0.2
	// GestureCooldown is the window after an activation during which the
	// gesture path cannot fire again.
	GestureCooldown = 800 * time.Millisecond
)

// GestureDetector edge-triggers one activation per voluntary facial
// gesture. It tracks a single boolean per cycle — whether the selected
// gesture score is past the threshold — and fires on the release edge,
// engaged in the previous cycle and released in this one.
type GestureDetector struct {
	method        ClickMethod
	lastEngaged   bool
	cooldownUntil time.Time
}

// NewGestureDetector creates a GestureDetector tracking the given method.
func NewGestureDetector(method ClickMethod) *GestureDetector {
	return &GestureDetector{method: method}
}

// Update advances the detector by one signal frame and reports whether a
// completed gesture fired. Firing starts the cooldown window; gestures
// completed during cooldown are spent silently. A method change mid-session
// discards the pending edge so the first cycle of the new method cannot
// fire spuriously.
func (g *GestureDetector) Update(frame landmark.Frame, cal Calibration, now time.Time) bool {
	if cal.ClickMethod != g.method {
		g.method = cal.ClickMethod
		g.lastEngaged = false
	}

	engaged := g.score(frame) >= GestureThreshold

	fired := false
	if g.lastEngaged && !engaged && !now.Before(g.cooldownUntil) {
		fired = true
		g.cooldownUntil = now.Add(GestureCooldown)
	}

	g.lastEngaged = engaged
	return fired
}

// InCooldown reports whether the post-activation window is still open.
func (g *GestureDetector) InCooldown(now time.Time) bool {
	return now.Before(g.cooldownUntil)
}

// Reset clears the edge state and cancels any pending cooldown.
func (g *GestureDetector) Reset() {
	g.lastEngaged = false
	g.cooldownUntil = time.Time{}
}

// score picks the frame signal the configured method watches. Blink uses
// the higher of the two per-eye closures so either eye can trigger.
func (g *GestureDetector) score(frame landmark.Frame) float64 {
	switch g.method {
	case ClickMouth:
		return frame.MouthOpen
	default:
		if frame.LeftEyeClosed > frame.RightEyeClosed {
			return frame.LeftEyeClosed
		}
		return frame.RightEyeClosed
	}
}
