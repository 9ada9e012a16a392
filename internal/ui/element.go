// Package ui provides the in-memory element layout the host interface
// publishes for hit testing.
package ui

// Role classifies an element the way the host UI describes it.
type Role string

const (
	// RoleButton is any button-equivalent control.
	RoleButton Role = "button"
	// RoleLink is a navigable link.
	RoleLink Role = "link"
	// RoleText is non-interactive content.
	RoleText Role = "text"
)

// Rect is an axis-aligned region in screen coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the point lies inside the rect. Edges count as
// inside so adjacent elements tile without gaps.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Element is one region of the host UI's layout.
type Element struct {
	ID     string `json:"id"`
	Role   Role   `json:"role"`
	Label  string `json:"label,omitempty"`
	Bounds Rect   `json:"bounds"`
	// Z orders overlapping elements; higher is topmost.
	Z int `json:"z"`
	// Interactive explicitly marks an element activatable regardless of
	// its role.
	Interactive bool `json:"interactive"`
}

// IsInteractive reports whether the element can be activated: a
// button-equivalent, a navigable link, or anything the host explicitly
// marked interactive.
func (e Element) IsInteractive() bool {
	return e.Interactive || e.Role == RoleButton || e.Role == RoleLink
}
