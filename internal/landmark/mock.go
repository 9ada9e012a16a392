package landmark

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	face     *FaceLandmarks
	sequence []*FaceLandmarks
	index    int
	err      error
	mu       sync.Mutex
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetFace sets the face that will be returned by every Detect call.
func (m *MockDetector) SetFace(face *FaceLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.face = face
	m.sequence = nil
}

// SetSequence sets a sequence of detection results that Detect will play
// back in order, one per call. A nil entry means "no face that cycle".
// After the sequence is exhausted the last entry repeats.
func (m *MockDetector) SetSequence(faces []*FaceLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence = faces
	m.index = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the pre-configured face, sequence entry, or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*FaceLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if len(m.sequence) > 0 {
		face := m.sequence[m.index]
		if m.index < len(m.sequence)-1 {
			m.index++
		}
		return face, nil
	}
	return m.face, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// NeutralFace returns a preset FaceLandmarks for a face looking straight at
// the camera: nose centered, eyes open, mouth closed.
func NeutralFace() *FaceLandmarks {
	f := &FaceLandmarks{Score: 0.95}

	f.Points[NoseTip] = Point3D{X: 0.5, Y: 0.5, Z: -0.02}
	f.Points[Chin] = Point3D{X: 0.5, Y: 0.75, Z: 0.0}
	f.Points[FaceLeft] = Point3D{X: 0.2, Y: 0.5, Z: 0.05}
	f.Points[FaceRight] = Point3D{X: 0.8, Y: 0.5, Z: 0.05}

	// Left eye open: lid gap well above the open aspect-ratio reference
	f.Points[LeftEyeOuter] = Point3D{X: 0.35, Y: 0.42, Z: 0.0}
	f.Points[LeftEyeInner] = Point3D{X: 0.43, Y: 0.42, Z: 0.0}
	f.Points[LeftEyeTop] = Point3D{X: 0.39, Y: 0.406, Z: 0.0}
	f.Points[LeftEyeBottom] = Point3D{X: 0.39, Y: 0.434, Z: 0.0}

	// Right eye open
	f.Points[RightEyeInner] = Point3D{X: 0.57, Y: 0.42, Z: 0.0}
	f.Points[RightEyeOuter] = Point3D{X: 0.65, Y: 0.42, Z: 0.0}
	f.Points[RightEyeTop] = Point3D{X: 0.61, Y: 0.406, Z: 0.0}
	f.Points[RightEyeBottom] = Point3D{X: 0.61, Y: 0.434, Z: 0.0}

	// Mouth closed: small lip gap relative to mouth width
	f.Points[MouthLeft] = Point3D{X: 0.44, Y: 0.62, Z: 0.0}
	f.Points[MouthRight] = Point3D{X: 0.56, Y: 0.62, Z: 0.0}
	f.Points[UpperLip] = Point3D{X: 0.5, Y: 0.617, Z: 0.0}
	f.Points[LowerLip] = Point3D{X: 0.5, Y: 0.623, Z: 0.0}

	return f
}

// BlinkFace returns a preset FaceLandmarks with both eyes closed and all
// other features neutral.
func BlinkFace() *FaceLandmarks {
	f := NeutralFace()

	f.Points[LeftEyeTop] = Point3D{X: 0.39, Y: 0.4185, Z: 0.0}
	f.Points[LeftEyeBottom] = Point3D{X: 0.39, Y: 0.4215, Z: 0.0}
	f.Points[RightEyeTop] = Point3D{X: 0.61, Y: 0.4185, Z: 0.0}
	f.Points[RightEyeBottom] = Point3D{X: 0.61, Y: 0.4215, Z: 0.0}

	return f
}

// MouthOpenFace returns a preset FaceLandmarks with the mouth wide open and
// all other features neutral.
func MouthOpenFace() *FaceLandmarks {
	f := NeutralFace()

	f.Points[UpperLip] = Point3D{X: 0.5, Y: 0.60, Z: 0.0}
	f.Points[LowerLip] = Point3D{X: 0.5, Y: 0.666, Z: 0.0}

	return f
}

// TurnedFace returns a preset FaceLandmarks with the head rotated so the
// nose sits at the given ratio between the face edges (0 = far left,
// 0.5 = centered, 1 = far right).
func TurnedFace(ratio float64) *FaceLandmarks {
	f := NeutralFace()
	f.Points[NoseTip] = Point3D{X: 0.2 + clamp01(ratio)*0.6, Y: 0.5, Z: -0.02}
	return f
}
