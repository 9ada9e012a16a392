package engine

import "time"

// ActivationSource identifies which path produced an activation.
type ActivationSource string

const (
	// SourceGesture marks activations from the blink/mouth edge detector.
	SourceGesture ActivationSource = "gesture"
	// SourceDwell marks activations from the dwell tracker.
	SourceDwell ActivationSource = "dwell"
)

// Activation is the discrete click-equivalent event produced for a resolved
// interactive target.
type Activation struct {
	Target string           `json:"target"`
	Source ActivationSource `json:"source"`
	At     time.Time        `json:"at"`
}

// Dispatcher delivers an activation to the host, which synthesizes the
// actual interaction on the element. Dispatch failures are logged by the
// engine and never propagate; a broken binding must not stop tracking.
type Dispatcher interface {
	Dispatch(a Activation) error
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(a Activation) error

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(a Activation) error {
	return f(a)
}
