package ui

import "sync"

// Tree holds the host UI's current layout and answers hit-test queries.
// The host replaces the layout whenever its interface changes; the engine
// queries it every pointer update. Queries are pure reads.
type Tree struct {
	mu       sync.RWMutex
	elements map[string]Element
}

// NewTree creates an empty Tree.
func NewTree() *Tree {
	return &Tree{
		elements: make(map[string]Element),
	}
}

// Replace swaps the entire layout for the given elements.
func (t *Tree) Replace(elements []Element) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.elements = make(map[string]Element, len(elements))
	for _, e := range elements {
		if e.ID == "" {
			continue
		}
		t.elements[e.ID] = e
	}
}

// Upsert adds or updates a single element.
func (t *Tree) Upsert(e Element) {
	if e.ID == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.elements[e.ID] = e
}

// Remove deletes an element by ID. Removing an unknown ID is a no-op.
func (t *Tree) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.elements, id)
}

// Get returns an element by ID.
func (t *Tree) Get(id string) (Element, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.elements[id]
	return e, ok
}

// Len returns the number of elements in the layout.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.elements)
}

// QueryTopmostInteractiveAt returns the ID of the highest-Z interactive
// element containing the point, or ok=false if nothing interactive is
// there. It implements the engine's HitTester interface.
func (t *Tree) QueryTopmostInteractiveAt(x, y float64) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var (
		bestID string
		bestZ  int
		found  bool
	)
	for id, e := range t.elements {
		if !e.Bounds.Contains(x, y) || !e.IsInteractive() {
			continue
		}
		if !found || e.Z > bestZ || (e.Z == bestZ && id < bestID) {
			bestID = id
			bestZ = e.Z
			found = true
		}
	}
	return bestID, found
}
