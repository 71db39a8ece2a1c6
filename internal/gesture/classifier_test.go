package gesture

import (
	"math"
	"testing"

	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/detector"
)

func TestClassifier_Modes(t *testing.T) {
	c := NewClassifier(1280, 720)

	tests := []struct {
		name string
		hand detector.HandLandmarks
		want Mode
	}{
		{"index only raised is drawing", detector.PointingLandmarks(0.5, 0.3), ModeDrawing},
		{"index and middle raised is hovering", detector.TwoFingerLandmarks(0.5, 0.3), ModeHovering},
		{"fist is idle", detector.FistLandmarks(), ModeIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Classify(&tt.hand)
			if res.Mode != tt.want {
				t.Errorf("Classify() mode = %q, want %q", res.Mode, tt.want)
			}
			if !res.HasCursor {
				t.Error("Classify() with a hand present must report a cursor")
			}
		})
	}
}

func TestClassifier_NoHandIsIdle(t *testing.T) {
	c := NewClassifier(1280, 720)

	res := c.Classify(nil)
	if res.Mode != ModeIdle {
		t.Errorf("Classify(nil) mode = %q, want %q", res.Mode, ModeIdle)
	}
	if res.HasCursor {
		t.Error("Classify(nil) must not report a cursor")
	}
}

func TestClassifier_MiddleRaisedAloneIsIdle(t *testing.T) {
	c := NewClassifier(1280, 720)

	// Middle finger up, index curled: not a drawing or hovering posture.
	hand := detector.FistLandmarks()
	hand.Points[detector.MiddleTip] = detector.Point3D{X: 0.48, Y: 0.30, Z: 0.0}

	res := c.Classify(&hand)
	if res.Mode != ModeIdle {
		t.Errorf("Classify() mode = %q, want %q", res.Mode, ModeIdle)
	}
}

func TestClassifier_CursorMirroring(t *testing.T) {
	c := NewClassifier(1280, 720)

	// Fingertip at normalized (0.3, 0.25): mirrored x = (1-0.3)*1280 = 896.
	hand := detector.PointingLandmarks(0.3, 0.25)
	res := c.Classify(&hand)

	if math.Abs(res.Cursor.X-896) > 1e-9 {
		t.Errorf("cursor x = %v, want 896", res.Cursor.X)
	}
	if math.Abs(res.Cursor.Y-0.25*720) > 1e-9 {
		t.Errorf("cursor y = %v, want %v", res.Cursor.Y, 0.25*720)
	}
}

func TestClassifier_TipExactlyAtJointIsNotRaised(t *testing.T) {
	c := NewClassifier(640, 480)

	// Extended test is strict: tip.Y < pip.Y. Equal Y means not raised.
	hand := detector.PointingLandmarks(0.5, 0.3)
	pip := hand.Points[detector.IndexPIP]
	hand.Points[detector.IndexTip] = detector.Point3D{X: 0.5, Y: pip.Y, Z: 0}

	res := c.Classify(&hand)
	if res.Mode != ModeIdle {
		t.Errorf("Classify() mode = %q, want %q", res.Mode, ModeIdle)
	}
}
