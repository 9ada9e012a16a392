// Package landmark provides face landmark types and signal extraction for head tracking.
package landmark

import "math"

// Face landmark indices for the subset of the MediaPipe face mesh that the
// detection service emits. The mesh index each position corresponds to is
// noted for reference.
// See: https://developers.google.com/mediapipe/solutions/vision/face_landmarker
const (
	NoseTip        = 0  // mesh 1
	Chin           = 1  // mesh 152
	FaceLeft       = 2  // mesh 234, left edge of the face oval
	FaceRight      = 3  // mesh 454, right edge of the face oval
	LeftEyeOuter   = 4  // mesh 33
	LeftEyeInner   = 5  // mesh 133
	LeftEyeTop     = 6  // mesh 159
	LeftEyeBottom  = 7  // mesh 145
	RightEyeInner  = 8  // mesh 362
	RightEyeOuter  = 9  // mesh 263
	RightEyeTop    = 10 // mesh 386
	RightEyeBottom = 11 // mesh 374
	MouthLeft      = 12 // mesh 61
	MouthRight     = 13 // mesh 291
	UpperLip       = 14 // mesh 13
	LowerLip       = 15 // mesh 14
	NumLandmarks   = 16
)

// Aspect-ratio references used to turn raw eye/mouth geometry into [0,1]
// scores. An eye at or above the open reference scores 0 (fully open); a
// mouth at or above the open reference scores 1 (fully open).
const (
	eyeOpenRatio   = 0.28
	mouthOpenRatio = 0.55
)

// Point3D represents a 3D point in normalized image coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FaceLandmarks represents one face sample from the detection service.
// Coordinates are normalized to the frame, so X and Y are in [0,1].
type FaceLandmarks struct {
	Points [NumLandmarks]Point3D `json:"points"`
	Score  float64               `json:"score"`
}

// Frame is one sample of the derived head-tracking signals, all in [0,1].
// It is the immutable per-cycle input consumed by the engine; a nil Frame
// means "no detection this cycle" and is a valid no-update signal.
type Frame struct {
	RotationRatio    float64 `json:"rotationRatio"`    // nose between face edges, 0 = far left
	VerticalPosition float64 `json:"verticalPosition"` // nose height in the frame, 0 = top
	LeftEyeClosed    float64 `json:"leftEyeClosed"`
	RightEyeClosed   float64 `json:"rightEyeClosed"`
	MouthOpen        float64 `json:"mouthOpen"`
}

// distance2D calculates the Euclidean distance between two points,
// ignoring depth. Signal extraction works in image-plane geometry only.
func distance2D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// clamp01 clamps v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// eyeClosure scores how closed an eye is from its aspect ratio: the
// lid gap over the corner-to-corner width. 0 is fully open, 1 fully closed.
func eyeClosure(outer, inner, top, bottom Point3D) float64 {
	width := distance2D(outer, inner)
	if width < 1e-10 {
		return 0
	}
	ratio := distance2D(top, bottom) / width
	return clamp01(1 - ratio/eyeOpenRatio)
}

// Extract reduces the raw landmarks to the head-tracking signal frame.
// Every output is clamped to [0,1]; extraction is stateless.
func (f *FaceLandmarks) Extract() *Frame {
	if f == nil {
		return nil
	}

	nose := f.Points[NoseTip]
	left := f.Points[FaceLeft]
	right := f.Points[FaceRight]

	// Horizontal rotation: where the nose sits between the face edges.
	// A degenerate face width reads as centered rather than an error.
	rotation := 0.5
	if width := right.X - left.X; math.Abs(width) > 1e-10 {
		rotation = (nose.X - left.X) / width
	}

	mouthOpen := 0.0
	if width := distance2D(f.Points[MouthLeft], f.Points[MouthRight]); width > 1e-10 {
		gap := distance2D(f.Points[UpperLip], f.Points[LowerLip])
		mouthOpen = gap / width / mouthOpenRatio
	}

	return &Frame{
		RotationRatio:    clamp01(rotation),
		VerticalPosition: clamp01(nose.Y),
		LeftEyeClosed:    eyeClosure(f.Points[LeftEyeOuter], f.Points[LeftEyeInner], f.Points[LeftEyeTop], f.Points[LeftEyeBottom]),
		RightEyeClosed:   eyeClosure(f.Points[RightEyeOuter], f.Points[RightEyeInner], f.Points[RightEyeTop], f.Points[RightEyeBottom]),
		MouthOpen:        clamp01(mouthOpen),
	}
}

// Clamp returns a copy of the frame with every signal clamped to [0,1].
// Frames arriving from outside the extractor go through this before use.
func (fr Frame) Clamp() Frame {
	return Frame{
		RotationRatio:    clamp01(fr.RotationRatio),
		VerticalPosition: clamp01(fr.VerticalPosition),
		LeftEyeClosed:    clamp01(fr.LeftEyeClosed),
		RightEyeClosed:   clamp01(fr.RightEyeClosed),
		MouthOpen:        clamp01(fr.MouthOpen),
	}
}
