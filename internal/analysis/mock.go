package analysis

import "context"

// MockAnalyzer is a test implementation returning canned feedback.
type MockAnalyzer struct {
	Feedback string
	Err      error
	Calls    int
	LastPNG  []byte
}

// Analyze records the call and returns the configured feedback or error.
func (m *MockAnalyzer) Analyze(ctx context.Context, png []byte) (string, error) {
	m.Calls++
	m.LastPNG = png
	if m.Err != nil {
		return "", m.Err
	}
	return m.Feedback, nil
}
