package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results, frame by frame when a
// sequence is set.
type MockDetector struct {
	hands    []HandLandmarks
	sequence [][]HandLandmarks
	seqIndex int
	err      error
	calls    int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
	m.sequence = nil
}

// SetSequence sets per-frame detection results. Each Detect call consumes
// one entry; once exhausted, the last entry repeats.
func (m *MockDetector) SetSequence(frames [][]HandLandmarks) {
	m.sequence = frames
	m.seqIndex = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.sequence) > 0 {
		hands := m.sequence[m.seqIndex]
		if m.seqIndex < len(m.sequence)-1 {
			m.seqIndex++
		}
		return hands, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// PointingLandmarks returns a hand with only the index finger raised:
// the drawing posture. TipX/TipY place the index fingertip in normalized
// coordinates so tests can steer the cursor.
func PointingLandmarks(tipX, tipY float64) HandLandmarks {
	landmarks := baseHand()

	// Index finger extended upward, tip well above the PIP joint.
	landmarks.Points[IndexMCP] = Point3D{X: tipX, Y: 0.65, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: tipX, Y: 0.55, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: tipX, Y: tipY + 0.08, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: tipX, Y: tipY, Z: 0.0}

	// Middle finger curled below the index PIP.
	landmarks.Points[MiddleMCP] = Point3D{X: 0.48, Y: 0.64, Z: -0.02}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.48, Y: 0.62, Z: -0.05}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.46, Y: 0.66, Z: -0.04}
	landmarks.Points[MiddleTip] = Point3D{X: 0.44, Y: 0.70, Z: -0.02}

	return landmarks
}

// TwoFingerLandmarks returns a hand with index and middle fingers raised:
// the hovering posture.
func TwoFingerLandmarks(tipX, tipY float64) HandLandmarks {
	landmarks := PointingLandmarks(tipX, tipY)

	// Raise the middle finger above the index PIP as well.
	landmarks.Points[MiddlePIP] = Point3D{X: 0.48, Y: 0.50, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.48, Y: 0.40, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.48, Y: tipY - 0.04, Z: 0.0}

	return landmarks
}

// FistLandmarks returns a hand with all fingers curled: the idle posture.
func FistLandmarks() HandLandmarks {
	landmarks := baseHand()

	// Index finger curled, tip at or below the PIP joint.
	landmarks.Points[IndexMCP] = Point3D{X: 0.54, Y: 0.66, Z: -0.02}
	landmarks.Points[IndexPIP] = Point3D{X: 0.54, Y: 0.60, Z: -0.05}
	landmarks.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.66, Z: -0.04}
	landmarks.Points[IndexTip] = Point3D{X: 0.50, Y: 0.70, Z: -0.02}

	// Middle finger curled.
	landmarks.Points[MiddleMCP] = Point3D{X: 0.48, Y: 0.64, Z: -0.02}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.48, Y: 0.62, Z: -0.05}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.46, Y: 0.68, Z: -0.04}
	landmarks.Points[MiddleTip] = Point3D{X: 0.44, Y: 0.72, Z: -0.02}

	return landmarks
}

// baseHand fills wrist, thumb, ring and pinky with a neutral curled pose.
// Those landmarks only matter for the skeleton overlay, not classification.
func baseHand() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.72, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.70, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.62, Y: 0.69, Z: 0.0}

	landmarks.Points[RingMCP] = Point3D{X: 0.44, Y: 0.66, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: 0.44, Y: 0.64, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.68, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.68, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.38, Y: 0.71, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: 0.36, Y: 0.74, Z: -0.02}

	return landmarks
}
