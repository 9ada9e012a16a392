// Package testdata provides synthetic camera frames and canned landmark
// sequences for pipeline and end-to-end tests, so no image files or
// hardware are needed.
package testdata

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/drishti/internal/landmark"
)

// MotionFrames returns n solid-color frames alternating between black and
// white. Consecutive frames differ in every pixel, so any motion detector
// threshold trips. The caller owns the Mats and must Close them.
func MotionFrames(n int) []*gocv.Mat {
	frames := make([]*gocv.Mat, 0, n)
	for i := 0; i < n; i++ {
		m := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
		if i%2 == 1 {
			m.SetTo(gocv.NewScalar(255, 255, 255, 0))
		}
		frames = append(frames, &m)
	}
	return frames
}

// StillFrames returns n identical black frames, useful for driving the
// pipeline back into idle mode.
func StillFrames(n int) []*gocv.Mat {
	frames := make([]*gocv.Mat, 0, n)
	for i := 0; i < n; i++ {
		m := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
		frames = append(frames, &m)
	}
	return frames
}

// CloseFrames releases every Mat in the slice.
func CloseFrames(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}

// BlinkSequence returns a detection sequence that performs one complete
// blink: neutral, eyes closed for a few cycles, then open again. The
// activation fires on the reopen edge.
func BlinkSequence() []*landmark.FaceLandmarks {
	return []*landmark.FaceLandmarks{
		landmark.NeutralFace(),
		landmark.NeutralFace(),
		landmark.BlinkFace(),
		landmark.BlinkFace(),
		landmark.BlinkFace(),
		landmark.NeutralFace(),
		landmark.NeutralFace(),
	}
}

// MouthSequence returns a detection sequence that performs one complete
// mouth gesture: neutral, mouth open for a few cycles, then closed again.
func MouthSequence() []*landmark.FaceLandmarks {
	return []*landmark.FaceLandmarks{
		landmark.NeutralFace(),
		landmark.NeutralFace(),
		landmark.MouthOpenFace(),
		landmark.MouthOpenFace(),
		landmark.MouthOpenFace(),
		landmark.NeutralFace(),
		landmark.NeutralFace(),
	}
}

// HoldSequence returns n cycles of the same neutral pose, for dwell tests
// where the pointer must stay put.
func HoldSequence(n int) []*landmark.FaceLandmarks {
	seq := make([]*landmark.FaceLandmarks, n)
	for i := range seq {
		seq[i] = landmark.NeutralFace()
	}
	return seq
}

// SweepSequence returns a head turn from the left ratio to the right ratio
// in n steps, for pointer travel tests.
func SweepSequence(from, to float64, n int) []*landmark.FaceLandmarks {
	if n < 2 {
		return []*landmark.FaceLandmarks{landmark.TurnedFace(from)}
	}
	seq := make([]*landmark.FaceLandmarks, n)
	step := (to - from) / float64(n-1)
	for i := range seq {
		seq[i] = landmark.TurnedFace(from + step*float64(i))
	}
	return seq
}
