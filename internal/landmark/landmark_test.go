package landmark

import (
	"math"
	"testing"
)

func TestExtract_NeutralFace(t *testing.T) {
	frame := NeutralFace().Extract()
	if frame == nil {
		t.Fatal("expected a frame for a neutral face")
	}

	if math.Abs(frame.RotationRatio-0.5) > 0.001 {
		t.Errorf("RotationRatio = %f, want 0.5", frame.RotationRatio)
	}
	if math.Abs(frame.VerticalPosition-0.5) > 0.001 {
		t.Errorf("VerticalPosition = %f, want 0.5", frame.VerticalPosition)
	}

	// Open eyes and a closed mouth must stay well under the 0.2
	// activation threshold, or resting faces would trigger clicks.
	if frame.LeftEyeClosed >= 0.2 {
		t.Errorf("LeftEyeClosed = %f, want < 0.2 for an open eye", frame.LeftEyeClosed)
	}
	if frame.RightEyeClosed >= 0.2 {
		t.Errorf("RightEyeClosed = %f, want < 0.2 for an open eye", frame.RightEyeClosed)
	}
	if frame.MouthOpen >= 0.2 {
		t.Errorf("MouthOpen = %f, want < 0.2 for a closed mouth", frame.MouthOpen)
	}
}

func TestExtract_BlinkFace(t *testing.T) {
	frame := BlinkFace().Extract()

	if frame.LeftEyeClosed < 0.2 {
		t.Errorf("LeftEyeClosed = %f, want >= 0.2 for a closed eye", frame.LeftEyeClosed)
	}
	if frame.RightEyeClosed < 0.2 {
		t.Errorf("RightEyeClosed = %f, want >= 0.2 for a closed eye", frame.RightEyeClosed)
	}

	// A blink must not disturb the pointer signals.
	if math.Abs(frame.RotationRatio-0.5) > 0.001 {
		t.Errorf("RotationRatio = %f, want 0.5 during blink", frame.RotationRatio)
	}
}

func TestExtract_MouthOpenFace(t *testing.T) {
	frame := MouthOpenFace().Extract()

	if frame.MouthOpen < 0.2 {
		t.Errorf("MouthOpen = %f, want >= 0.2 for an open mouth", frame.MouthOpen)
	}
	if frame.LeftEyeClosed >= 0.2 || frame.RightEyeClosed >= 0.2 {
		t.Errorf("eyes read closed (%f, %f) on a mouth-open face", frame.LeftEyeClosed, frame.RightEyeClosed)
	}
}

func TestExtract_TurnedFace(t *testing.T) {
	tests := []struct {
		ratio float64
		want  float64
	}{
		{0.0, 0.0},
		{0.25, 0.25},
		{0.5, 0.5},
		{0.75, 0.75},
		{1.0, 1.0},
	}

	for _, tt := range tests {
		frame := TurnedFace(tt.ratio).Extract()
		if math.Abs(frame.RotationRatio-tt.want) > 0.001 {
			t.Errorf("TurnedFace(%f): RotationRatio = %f, want %f", tt.ratio, frame.RotationRatio, tt.want)
		}
	}
}

func TestExtract_DegenerateFaceWidth(t *testing.T) {
	f := NeutralFace()
	f.Points[FaceLeft] = f.Points[FaceRight]

	frame := f.Extract()
	if frame.RotationRatio != 0.5 {
		t.Errorf("RotationRatio = %f, want 0.5 for zero face width", frame.RotationRatio)
	}
}

func TestExtract_NilLandmarks(t *testing.T) {
	var f *FaceLandmarks
	if frame := f.Extract(); frame != nil {
		t.Errorf("expected nil frame for nil landmarks, got %+v", frame)
	}
}

func TestFrame_Clamp(t *testing.T) {
	frame := Frame{
		RotationRatio:    1.7,
		VerticalPosition: -0.3,
		LeftEyeClosed:    2.0,
		RightEyeClosed:   -1.0,
		MouthOpen:        0.4,
	}

	clamped := frame.Clamp()

	if clamped.RotationRatio != 1.0 {
		t.Errorf("RotationRatio = %f, want 1.0", clamped.RotationRatio)
	}
	if clamped.VerticalPosition != 0.0 {
		t.Errorf("VerticalPosition = %f, want 0.0", clamped.VerticalPosition)
	}
	if clamped.LeftEyeClosed != 1.0 {
		t.Errorf("LeftEyeClosed = %f, want 1.0", clamped.LeftEyeClosed)
	}
	if clamped.RightEyeClosed != 0.0 {
		t.Errorf("RightEyeClosed = %f, want 0.0", clamped.RightEyeClosed)
	}
	if clamped.MouthOpen != 0.4 {
		t.Errorf("MouthOpen = %f, want 0.4 unchanged", clamped.MouthOpen)
	}
}

func TestMockDetector_Sequence(t *testing.T) {
	mock := NewMockDetector()
	mock.SetSequence([]*FaceLandmarks{NeutralFace(), nil, BlinkFace()})

	face, err := mock.Detect(nil)
	if err != nil || face == nil {
		t.Fatalf("first detect = (%v, %v), want neutral face", face, err)
	}

	face, _ = mock.Detect(nil)
	if face != nil {
		t.Fatal("second detect should report no face")
	}

	// Last entry repeats once the sequence is exhausted.
	for i := 0; i < 3; i++ {
		face, _ = mock.Detect(nil)
		if face == nil {
			t.Fatalf("detect %d after exhaustion = nil, want blink face", i)
		}
	}
}
