package engine

import (
	"log"
	"time"

	"github.com/ayusman/drishti/internal/landmark"
)

// UpdateInterval caps pointer processing at ~60 updates per second no
// matter how fast the detection source delivers frames.
const UpdateInterval = 16 * time.Millisecond

// TickResult is the engine's complete per-tick output for the host:
// where the pointer is, what it hovers, how far the dwell ring has come,
// and any activations produced this tick.
type TickResult struct {
	Pointer       Point        `json:"pointer"`
	Updated       bool         `json:"updated"`
	Hovered       string       `json:"hovered,omitempty"`
	DwellProgress float64      `json:"dwellProgress"`
	Activations   []Activation `json:"activations,omitempty"`
}

// Engine is the head-pose pointer and activation core. It is driven by
// Tick, one call per detection cycle, and owns all mutable state
// exclusively: callers interact only through frames in and TickResult out,
// which keeps replays deterministic.
//
// Engine is not safe for concurrent use; the host pipeline calls it from a
// single goroutine.
type Engine struct {
	cal        Calibration
	mapper     *Mapper
	gesture    *GestureDetector
	dwell      *DwellTracker
	hit        HitTester
	dispatcher Dispatcher

	interval   time.Duration
	lastUpdate time.Time
	hasUpdated bool
	pending    *landmark.Frame

	pointer   Point
	hovered   string
	eyeRest   float64
	mouthRest float64
}

// New creates an Engine with the default calibration and update interval.
func New(viewport Viewport, hit HitTester, dispatcher Dispatcher) *Engine {
	cal := DefaultCalibration()
	return &Engine{
		cal:        cal,
		mapper:     NewMapper(viewport),
		gesture:    NewGestureDetector(cal.ClickMethod),
		dwell:      NewDwellTracker(),
		hit:        hit,
		dispatcher: dispatcher,
		interval:   UpdateInterval,
	}
}

// SetCalibration swaps the calibration. Values are clamped, never rejected,
// so the host settings UI can write through without validating.
func (e *Engine) SetCalibration(c Calibration) {
	e.cal = c.Clamp()
}

// Calibration returns the engine's current (clamped) calibration.
func (e *Engine) Calibration() Calibration {
	return e.cal
}

// SetViewport updates the screen dimensions the pointer maps into.
func (e *Engine) SetViewport(v Viewport) {
	e.mapper.SetViewport(v)
}

// SetUpdateInterval overrides the pointer rate limit. Zero disables
// throttling entirely, which replay tests rely on for determinism.
func (e *Engine) SetUpdateInterval(d time.Duration) {
	e.interval = d
}

// SetBaseline applies a trained per-user baseline: the mapper measures
// deviation from the user's actual rest pose and the gesture scores are
// measured above the user's resting levels.
func (e *Engine) SetBaseline(b Baseline) {
	e.mapper.SetCenter(b.RotationCenter, b.VerticalCenter)
	e.eyeRest = b.EyeRest
	e.mouthRest = b.MouthRest
}

// Pointer returns the last computed pointer position.
func (e *Engine) Pointer() Point {
	return e.pointer
}

// Reset cancels all transient state: in-flight dwell, gesture cooldown,
// smoothing history, and any retained frame. Used when tracking is toggled
// off so nothing fires after teardown.
func (e *Engine) Reset() {
	e.mapper.Reset()
	e.gesture.Reset()
	e.dwell.Reset()
	e.pending = nil
	e.hasUpdated = false
	e.hovered = ""
}

// Tick advances the engine by one detection cycle. A nil frame means "no
// detection this cycle": the pointer and every internal state are retained
// unchanged. Frames arriving faster than the update interval are not
// processed, but the newest one is kept for the next allowed update.
func (e *Engine) Tick(frame *landmark.Frame, now time.Time) TickResult {
	held := TickResult{
		Pointer:       e.pointer,
		Hovered:       e.hovered,
		DwellProgress: e.dwell.Progress(),
	}

	if e.interval > 0 && e.hasUpdated && now.Sub(e.lastUpdate) < e.interval {
		if frame != nil {
			f := frame.Clamp()
			e.pending = &f
		}
		return held
	}

	if frame == nil {
		frame = e.pending
	}
	e.pending = nil
	if frame == nil {
		return held
	}

	f := frame.Clamp()
	e.lastUpdate = now
	e.hasUpdated = true

	e.pointer = e.mapper.Map(f.RotationRatio, f.VerticalPosition, e.cal)

	hovered, ok := e.hit.QueryTopmostInteractiveAt(e.pointer.X, e.pointer.Y)
	if !ok {
		hovered = ""
	}
	e.hovered = hovered

	var activations []Activation

	// Gesture path: the detector transitions (and spends its cooldown)
	// regardless of the hit test; with nothing under the pointer the
	// event is swallowed here.
	if e.gesture.Update(e.adjusted(f), e.cal, now) && hovered != "" {
		activations = append(activations, Activation{Target: hovered, Source: SourceGesture, At: now})
	}

	// Dwell path, fully independent of the gesture path.
	if e.dwell.Update(hovered, e.cal.DwellTime(), now) {
		activations = append(activations, Activation{Target: hovered, Source: SourceDwell, At: now})
	}

	for _, a := range activations {
		if e.dispatcher == nil {
			continue
		}
		if err := e.dispatcher.Dispatch(a); err != nil {
			log.Printf("Activation dispatch failed for %s (%s): %v", a.Target, a.Source, err)
		}
	}

	return TickResult{
		Pointer:       e.pointer,
		Updated:       true,
		Hovered:       hovered,
		DwellProgress: e.dwell.Progress(),
		Activations:   activations,
	}
}

// adjusted shifts the gesture scores down by the user's resting levels so
// a naturally narrow-eyed or open-mouthed rest pose does not sit on the
// activation threshold.
func (e *Engine) adjusted(f landmark.Frame) landmark.Frame {
	if e.eyeRest == 0 && e.mouthRest == 0 {
		return f
	}
	f.LeftEyeClosed -= e.eyeRest
	f.RightEyeClosed -= e.eyeRest
	f.MouthOpen -= e.mouthRest
	return f.Clamp()
}
