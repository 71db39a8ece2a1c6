// Package canvas provides the drawing-surface state for the Vision Draw pipeline:
// points, strokes, the in-progress live stroke, and the accumulator that turns
// gesture modes into finalized strokes.
package canvas

// Point represents a 2D canvas-space coordinate, already mirrored to match
// the user's view.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style holds the brush settings applied to a stroke when it is finalized.
type Style struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// DefaultStyle returns the brush settings used before the user picks anything.
func DefaultStyle() Style {
	return Style{Color: "#ff3b30", Width: 6}
}

// Stroke is a finalized, immutable polyline with a fixed color and width.
// It is created only by the accumulator; callers must not modify Points.
type Stroke struct {
	Points []Point `json:"points"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
}

// Surface is the ordered sequence of finalized strokes. It is append-only
// during a session and fully cleared by Reset.
type Surface struct {
	strokes []Stroke
}

// NewSurface creates an empty drawing surface.
func NewSurface() *Surface {
	return &Surface{}
}

// append adds a finalized stroke. Only the accumulator calls this.
func (s *Surface) append(st Stroke) {
	s.strokes = append(s.strokes, st)
}

// Strokes returns the finalized strokes. The returned slice shares the
// surface's backing array; callers must treat it as read-only.
func (s *Surface) Strokes() []Stroke {
	return s.strokes
}

// Len returns the number of finalized strokes.
func (s *Surface) Len() int {
	return len(s.strokes)
}

// Reset removes every finalized stroke.
func (s *Surface) Reset() {
	s.strokes = s.strokes[:0]
}
