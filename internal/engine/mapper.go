package engine

// Pointer mapping constants.
const (
	// PointerMargin keeps the pointer glyph fully visible at the viewport
	// edges, in pixels.
	PointerMargin = 20.0
)

// Point is a screen-space position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the host UI's drawable area in pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Mapper converts head-pose signals into a smoothed screen pointer.
//
// The smoothing filter is the exponential variant
// (smoothed = smoothed*f + target*(1-f)), so Calibration.Smoothing is the
// filter factor directly. The horizontal axis is mirrored: the preview feed
// the user watches is mirrored, so turning toward their right must move the
// pointer right.
type Mapper struct {
	viewport    Viewport
	center      Point // signal-space rest position, default (0.5, 0.5)
	smoothed    Point
	initialized bool
}

// NewMapper creates a Mapper for the given viewport.
func NewMapper(viewport Viewport) *Mapper {
	return &Mapper{
		viewport: viewport,
		center:   Point{X: 0.5, Y: 0.5},
	}
}

// SetViewport updates the viewport dimensions. The smoothing state is kept;
// a resize mid-session must not snap the pointer.
func (m *Mapper) SetViewport(v Viewport) {
	m.viewport = v
}

// SetCenter sets the signal-space rest position the deviation is measured
// from. The default is (0.5, 0.5); a trained per-user baseline replaces it.
func (m *Mapper) SetCenter(rotation, vertical float64) {
	m.center = Point{X: rotation, Y: vertical}
}

// Map converts one (rotationRatio, verticalPosition) sample into the next
// pointer position: deviation from center scaled by sensitivity, mirrored
// horizontally, smoothed, then clamped to the margin bounds.
func (m *Mapper) Map(rotation, vertical float64, cal Calibration) Point {
	devX := (m.center.X - rotation) * cal.Sensitivity
	devY := (vertical - m.center.Y) * cal.Sensitivity

	target := Point{
		X: (0.5 + devX) * m.viewport.Width,
		Y: (0.5 + devY) * m.viewport.Height,
	}

	if !m.initialized {
		m.smoothed = target
		m.initialized = true
	} else {
		f := cal.Smoothing
		m.smoothed.X = m.smoothed.X*f + target.X*(1-f)
		m.smoothed.Y = m.smoothed.Y*f + target.Y*(1-f)
	}

	return Point{
		X: clampAxis(m.smoothed.X, m.viewport.Width),
		Y: clampAxis(m.smoothed.Y, m.viewport.Height),
	}
}

// Reset clears the smoothing state so the next sample reinitializes it.
func (m *Mapper) Reset() {
	m.smoothed = Point{}
	m.initialized = false
}

// clampAxis clamps v to [PointerMargin, dim-PointerMargin]. A viewport
// smaller than twice the margin collapses to its midpoint.
func clampAxis(v, dim float64) float64 {
	lo, hi := PointerMargin, dim-PointerMargin
	if hi < lo {
		return dim / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
