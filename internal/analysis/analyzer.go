// Package analysis sends a rendered drawing to a remote vision service and
// returns free-text feedback. It sits outside the frame pipeline and runs
// only on explicit user request.
package analysis

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no analysis endpoint (or API key) has
// been configured. The server surfaces this as "analysis unavailable"
// rather than a hard failure.
var ErrNotConfigured = errors.New("analysis: endpoint not configured")

// Analyzer accepts a PNG encoding of the drawing surface and returns
// free-text feedback about the sketch.
type Analyzer interface {
	Analyze(ctx context.Context, png []byte) (string, error)
}
