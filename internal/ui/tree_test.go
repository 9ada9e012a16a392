package ui

import "testing"

func TestTree_TopmostInteractiveWins(t *testing.T) {
	tree := NewTree()
	tree.Replace([]Element{
		{ID: "background", Role: RoleText, Bounds: Rect{X: 0, Y: 0, Width: 1000, Height: 1000}, Z: 0},
		{ID: "card", Role: RoleText, Bounds: Rect{X: 100, Y: 100, Width: 400, Height: 300}, Z: 1},
		{ID: "ok-button", Role: RoleButton, Bounds: Rect{X: 150, Y: 300, Width: 120, Height: 40}, Z: 2},
		{ID: "overlay-link", Role: RoleLink, Bounds: Rect{X: 150, Y: 300, Width: 120, Height: 40}, Z: 5},
	})

	id, ok := tree.QueryTopmostInteractiveAt(200, 320)
	if !ok {
		t.Fatal("expected a hit inside the stacked region")
	}
	if id != "overlay-link" {
		t.Errorf("topmost = %q, want overlay-link (highest Z)", id)
	}
}

func TestTree_NonInteractiveIsTransparent(t *testing.T) {
	tree := NewTree()
	tree.Replace([]Element{
		{ID: "button", Role: RoleButton, Bounds: Rect{X: 0, Y: 0, Width: 100, Height: 100}, Z: 0},
		{ID: "tooltip", Role: RoleText, Bounds: Rect{X: 0, Y: 0, Width: 100, Height: 100}, Z: 10},
	})

	// The tooltip sits on top but is not interactive, so the hit falls
	// through to the button.
	id, ok := tree.QueryTopmostInteractiveAt(50, 50)
	if !ok || id != "button" {
		t.Errorf("hit = (%q, %v), want button through the tooltip", id, ok)
	}
}

func TestTree_ExplicitInteractiveMarker(t *testing.T) {
	tree := NewTree()
	tree.Upsert(Element{
		ID:          "custom-widget",
		Role:        RoleText,
		Bounds:      Rect{X: 0, Y: 0, Width: 50, Height: 50},
		Interactive: true,
	})

	id, ok := tree.QueryTopmostInteractiveAt(25, 25)
	if !ok || id != "custom-widget" {
		t.Errorf("hit = (%q, %v), want explicitly marked widget", id, ok)
	}
}

func TestTree_MissAndEmptyTree(t *testing.T) {
	tree := NewTree()

	if _, ok := tree.QueryTopmostInteractiveAt(10, 10); ok {
		t.Error("hit on an empty tree")
	}

	tree.Upsert(Element{ID: "btn", Role: RoleButton, Bounds: Rect{X: 100, Y: 100, Width: 50, Height: 50}})
	if _, ok := tree.QueryTopmostInteractiveAt(10, 10); ok {
		t.Error("hit outside every element")
	}
}

func TestTree_EdgeCountsAsInside(t *testing.T) {
	tree := NewTree()
	tree.Upsert(Element{ID: "btn", Role: RoleButton, Bounds: Rect{X: 100, Y: 100, Width: 50, Height: 50}})

	if _, ok := tree.QueryTopmostInteractiveAt(100, 100); !ok {
		t.Error("top-left corner missed")
	}
	if _, ok := tree.QueryTopmostInteractiveAt(150, 150); !ok {
		t.Error("bottom-right corner missed")
	}
}

func TestTree_ReplaceAndRemove(t *testing.T) {
	tree := NewTree()
	tree.Replace([]Element{
		{ID: "a", Role: RoleButton, Bounds: Rect{X: 0, Y: 0, Width: 10, Height: 10}},
		{ID: "b", Role: RoleButton, Bounds: Rect{X: 20, Y: 0, Width: 10, Height: 10}},
	})
	if tree.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tree.Len())
	}

	tree.Remove("a")
	if _, ok := tree.QueryTopmostInteractiveAt(5, 5); ok {
		t.Error("removed element still hit")
	}

	// Replace drops everything not in the new layout.
	tree.Replace([]Element{{ID: "c", Role: RoleLink, Bounds: Rect{X: 0, Y: 0, Width: 10, Height: 10}}})
	if _, ok := tree.Get("b"); ok {
		t.Error("Replace kept a stale element")
	}
	if id, ok := tree.QueryTopmostInteractiveAt(5, 5); !ok || id != "c" {
		t.Errorf("hit = (%q, %v), want c", id, ok)
	}
}

func TestTree_DeterministicTieBreak(t *testing.T) {
	tree := NewTree()
	tree.Replace([]Element{
		{ID: "z-later", Role: RoleButton, Bounds: Rect{X: 0, Y: 0, Width: 10, Height: 10}, Z: 3},
		{ID: "a-first", Role: RoleButton, Bounds: Rect{X: 0, Y: 0, Width: 10, Height: 10}, Z: 3},
	})

	// Equal Z resolves by ID so repeated queries agree.
	for i := 0; i < 5; i++ {
		id, _ := tree.QueryTopmostInteractiveAt(5, 5)
		if id != "a-first" {
			t.Fatalf("tie-break returned %q, want a-first", id)
		}
	}
}
