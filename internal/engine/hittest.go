package engine

// HitTester resolves the topmost interactive element under a screen point.
// "Interactive" is the host UI's call: a button-equivalent, a navigable
// link, or anything explicitly marked interactive. Implementations must be
// pure queries with no side effects.
type HitTester interface {
	// QueryTopmostInteractiveAt returns the ID of the topmost interactive
	// element at (x, y), or ok=false if nothing interactive is there.
	QueryTopmostInteractiveAt(x, y float64) (id string, ok bool)
}

// HitTesterFunc adapts a function to the HitTester interface.
type HitTesterFunc func(x, y float64) (string, bool)

// QueryTopmostInteractiveAt calls f.
func (f HitTesterFunc) QueryTopmostInteractiveAt(x, y float64) (string, bool) {
	return f(x, y)
}
