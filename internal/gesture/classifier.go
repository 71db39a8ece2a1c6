// Package gesture classifies hand landmarks into the drawing modes used by
// the stroke pipeline.
package gesture

import (
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/canvas"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/detector"
)

// Mode is the discrete gesture state driving stroke accumulation.
type Mode string

const (
	// ModeDrawing means only the index finger is raised: the fingertip inks.
	ModeDrawing Mode = "drawing"
	// ModeHovering means index and middle fingers are raised: the fingertip
	// moves without inking.
	ModeHovering Mode = "hovering"
	// ModeIdle means any other posture, or no hand in frame.
	ModeIdle Mode = "idle"
)

// Result is one frame's classification: the mode plus the fingertip position
// in canvas space. HasCursor is false when no hand was detected.
type Result struct {
	Mode      Mode
	Cursor    canvas.Point
	HasCursor bool
}

// Classifier maps a single frame's hand landmarks to a gesture mode and a
// mirrored canvas-space cursor position.
type Classifier struct {
	width  int
	height int
}

// NewClassifier creates a classifier producing cursor positions for a canvas
// of the given pixel size.
func NewClassifier(width, height int) *Classifier {
	return &Classifier{width: width, height: height}
}

// Classify maps one hand's landmarks to a gesture mode and cursor position.
// A nil hand (nothing detected this frame) classifies as idle with no cursor.
//
// A fingertip counts as raised when it sits above the index finger's proximal
// joint on screen; image y grows downward, so raised means a smaller y. Only
// the index raised is drawing; index plus middle is hovering; everything else
// is idle.
func (c *Classifier) Classify(hand *detector.HandLandmarks) Result {
	if hand == nil {
		return Result{Mode: ModeIdle}
	}

	indexTip := hand.Points[detector.IndexTip]
	middleTip := hand.Points[detector.MiddleTip]
	indexPIP := hand.Points[detector.IndexPIP]

	indexRaised := indexTip.Y < indexPIP.Y
	middleRaised := middleTip.Y < indexPIP.Y

	mode := ModeIdle
	switch {
	case indexRaised && !middleRaised:
		mode = ModeDrawing
	case indexRaised && middleRaised:
		mode = ModeHovering
	}

	return Result{
		Mode:      mode,
		Cursor:    c.cursor(indexTip),
		HasCursor: true,
	}
}

// cursor converts a normalized landmark to canvas space. The x axis is
// mirrored because the feed is displayed selfie-style while landmarks are
// reported in camera-native coordinates.
func (c *Classifier) cursor(tip detector.Point3D) canvas.Point {
	return canvas.Point{
		X: (1 - tip.X) * float64(c.width),
		Y: tip.Y * float64(c.height),
	}
}
