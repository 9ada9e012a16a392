package engine

import "time"

// DwellTracker implements the dwell activation path: sustained hover over
// one interactive target for the configured duration fires an activation,
// independent of the gesture path.
//
// Progress only advances when the engine processes a pointer update, so a
// lost frame freezes the ring rather than resetting it, and teardown
// naturally cancels any pending dwell.
type DwellTracker struct {
	target   string
	start    time.Time
	progress float64
}

// NewDwellTracker creates an empty DwellTracker.
func NewDwellTracker() *DwellTracker {
	return &DwellTracker{}
}

// Update advances the tracker with the target currently under the pointer
// ("" for none) and reports whether the dwell completed. Any target change
// resets progress to zero; completion empties the tracker so dwelling on
// the same target again restarts the full duration.
func (d *DwellTracker) Update(target string, dwellTime time.Duration, now time.Time) bool {
	if target != d.target {
		d.target = target
		d.start = now
		d.progress = 0
		return false
	}

	if d.target == "" {
		return false
	}

	p := float64(now.Sub(d.start)) / float64(dwellTime) * 100
	if p >= 100 {
		d.target = ""
		d.progress = 0
		return true
	}
	if p > d.progress {
		d.progress = p
	}
	return false
}

// Target returns the element currently being dwelled on, or "".
func (d *DwellTracker) Target() string {
	return d.target
}

// Progress returns the current dwell progress in [0,100].
func (d *DwellTracker) Progress() float64 {
	return d.progress
}

// Reset cancels any in-flight dwell.
func (d *DwellTracker) Reset() {
	d.target = ""
	d.start = time.Time{}
	d.progress = 0
}
