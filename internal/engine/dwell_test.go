package engine

import (
	"testing"
	"time"
)

var dwellBase = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const dwellTime = time.Second

func TestDwellTracker_CompletesAfterFullDuration(t *testing.T) {
	d := NewDwellTracker()

	if d.Update("btn", dwellTime, dwellBase) {
		t.Fatal("fired on first hover")
	}

	if d.Update("btn", dwellTime, dwellBase.Add(500*time.Millisecond)) {
		t.Fatal("fired at 50% progress")
	}
	if p := d.Progress(); p < 49 || p > 51 {
		t.Errorf("progress at 500ms = %f, want ~50", p)
	}

	if !d.Update("btn", dwellTime, dwellBase.Add(dwellTime)) {
		t.Fatal("did not fire at full duration")
	}

	// Progress resets immediately after firing and the tracker empties,
	// so dwelling again restarts from zero.
	if d.Progress() != 0 {
		t.Errorf("progress after fire = %f, want 0", d.Progress())
	}
	if d.Target() != "" {
		t.Errorf("target after fire = %q, want empty", d.Target())
	}
}

func TestDwellTracker_TargetChangeResets(t *testing.T) {
	d := NewDwellTracker()

	d.Update("a", dwellTime, dwellBase)
	d.Update("a", dwellTime, dwellBase.Add(500*time.Millisecond))

	// Move to b at 50%: progress resets, a never fires.
	if d.Update("b", dwellTime, dwellBase.Add(510*time.Millisecond)) {
		t.Fatal("fired on target change")
	}
	if d.Progress() != 0 {
		t.Errorf("progress after target change = %f, want 0", d.Progress())
	}

	// b needs its own full duration, measured from the switch.
	if d.Update("b", dwellTime, dwellBase.Add(1200*time.Millisecond)) {
		t.Error("b fired before its full dwell elapsed")
	}
	if !d.Update("b", dwellTime, dwellBase.Add(1510*time.Millisecond)) {
		t.Error("b did not fire after its full dwell")
	}
}

func TestDwellTracker_LosingTargetCancels(t *testing.T) {
	d := NewDwellTracker()

	d.Update("btn", dwellTime, dwellBase)
	d.Update("", dwellTime, dwellBase.Add(300*time.Millisecond))

	if d.Target() != "" || d.Progress() != 0 {
		t.Errorf("tracker not cleared after target lost: target=%q progress=%f", d.Target(), d.Progress())
	}

	// Hovering nothing never fires.
	if d.Update("", dwellTime, dwellBase.Add(5*time.Second)) {
		t.Error("fired with no target")
	}
}

func TestDwellTracker_ProgressMonotonicWhileTargetHeld(t *testing.T) {
	d := NewDwellTracker()

	d.Update("btn", dwellTime, dwellBase)
	last := d.Progress()
	for ms := 100; ms < 1000; ms += 100 {
		d.Update("btn", dwellTime, dwellBase.Add(time.Duration(ms)*time.Millisecond))
		if d.Progress() < last {
			t.Fatalf("progress decreased from %f to %f while target held", last, d.Progress())
		}
		last = d.Progress()
	}
}

func TestDwellTracker_RedwellRestartsFullDuration(t *testing.T) {
	d := NewDwellTracker()

	d.Update("btn", dwellTime, dwellBase)
	if !d.Update("btn", dwellTime, dwellBase.Add(dwellTime)) {
		t.Fatal("first dwell did not fire")
	}

	// Still hovering the same target: the next update re-arms it and a
	// second full duration is required.
	mid := dwellBase.Add(dwellTime + 10*time.Millisecond)
	d.Update("btn", dwellTime, mid)
	if d.Update("btn", dwellTime, mid.Add(900*time.Millisecond)) {
		t.Error("re-dwell fired before a full second duration")
	}
	if !d.Update("btn", dwellTime, mid.Add(dwellTime)) {
		t.Error("re-dwell did not fire after a full second duration")
	}
}

func TestDwellTracker_Reset(t *testing.T) {
	d := NewDwellTracker()

	d.Update("btn", dwellTime, dwellBase)
	d.Update("btn", dwellTime, dwellBase.Add(900*time.Millisecond))
	d.Reset()

	if d.Target() != "" || d.Progress() != 0 {
		t.Error("Reset did not clear the tracker")
	}
	if d.Update("btn", dwellTime, dwellBase.Add(950*time.Millisecond)) {
		t.Error("fired right after Reset; dwell must restart")
	}
}
