package engine

import (
	"encoding/json"
	"fmt"

	"github.com/ayusman/drishti/internal/landmark"
)

// Baseline captures a user's resting signal levels, derived from recorded
// neutral-pose samples. The zero value means "untrained": deviation is
// measured from the geometric center and raw gesture scores are used as-is.
type Baseline struct {
	RotationCenter float64 `json:"rotationCenter"`
	VerticalCenter float64 `json:"verticalCenter"`
	EyeRest        float64 `json:"eyeRest"`
	MouthRest      float64 `json:"mouthRest"`
}

// Tuner averages recorded neutral-pose samples into a per-user Baseline.
type Tuner struct{}

// NewTuner creates a new Tuner instance.
func NewTuner() *Tuner {
	return &Tuner{}
}

// Train parses the raw sample payloads (JSON-encoded landmark.Frame, the
// shape the sample store holds) and averages them into a Baseline.
func (t *Tuner) Train(samples []json.RawMessage) (Baseline, error) {
	if len(samples) == 0 {
		return Baseline{}, fmt.Errorf("no samples provided")
	}

	var sum Baseline
	for i, raw := range samples {
		var frame landmark.Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			return Baseline{}, fmt.Errorf("failed to parse sample %d: %w", i, err)
		}
		frame = frame.Clamp()

		sum.RotationCenter += frame.RotationRatio
		sum.VerticalCenter += frame.VerticalPosition
		// Resting eye level uses the higher closure, matching the score
		// the blink detector watches.
		if frame.LeftEyeClosed > frame.RightEyeClosed {
			sum.EyeRest += frame.LeftEyeClosed
		} else {
			sum.EyeRest += frame.RightEyeClosed
		}
		sum.MouthRest += frame.MouthOpen
	}

	n := float64(len(samples))
	return Baseline{
		RotationCenter: sum.RotationCenter / n,
		VerticalCenter: sum.VerticalCenter / n,
		EyeRest:        sum.EyeRest / n,
		MouthRest:      sum.MouthRest / n,
	}, nil
}
