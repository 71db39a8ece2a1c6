package canvas

// Accumulator turns per-frame drawing events into finalized strokes.
//
// It is a two-state machine: EMPTY (no live stroke) and ACCUMULATING.
// Extend appends to the live stroke and moves to ACCUMULATING; Finalize
// snapshots the live stroke onto the surface and returns to EMPTY. The
// live stroke and the surface never share point slices; finalization
// copies.
//
// The accumulator is not safe for concurrent use. The pipeline drives it
// from a single goroutine (one call per frame).
type Accumulator struct {
	surface *Surface
	live    []Point
}

// NewAccumulator creates an accumulator writing finalized strokes to surface.
func NewAccumulator(surface *Surface) *Accumulator {
	return &Accumulator{surface: surface}
}

// Extend appends the cursor position to the live stroke, starting a new
// live stroke if none is in progress.
func (a *Accumulator) Extend(p Point) {
	a.live = append(a.live, p)
}

// Finalize ends the live stroke, if any, snapshotting it onto the surface
// with the given style. The style is read here, at finalize time, so a
// brush change mid-stroke restyles the whole stroke, never per segment.
//
// A live stroke with fewer than 2 points is discarded: a single tap leaves
// no visible mark. Finalize on an empty live stroke is a no-op. Returns
// true if a stroke was appended to the surface.
func (a *Accumulator) Finalize(style Style) bool {
	n := len(a.live)
	if n == 0 {
		return false
	}

	appended := false
	if n >= 2 {
		points := make([]Point, n)
		copy(points, a.live)
		a.surface.append(Stroke{
			Points: points,
			Color:  style.Color,
			Width:  style.Width,
		})
		appended = true
	}

	a.live = a.live[:0]
	return appended
}

// Live returns the in-progress stroke points. The slice is owned by the
// accumulator and valid only until the next Extend/Finalize/Reset.
func (a *Accumulator) Live() []Point {
	return a.live
}

// LastSegment returns the two most recent live points, so the renderer can
// draw only the newest segment each frame instead of the whole live stroke.
func (a *Accumulator) LastSegment() (p1, p2 Point, ok bool) {
	if len(a.live) < 2 {
		return Point{}, Point{}, false
	}
	return a.live[len(a.live)-2], a.live[len(a.live)-1], true
}

// Accumulating reports whether a live stroke is in progress.
func (a *Accumulator) Accumulating() bool {
	return len(a.live) > 0
}

// Surface returns the drawing surface this accumulator writes to.
func (a *Accumulator) Surface() *Surface {
	return a.surface
}

// Reset clears the live stroke and the drawing surface unconditionally.
func (a *Accumulator) Reset() {
	a.live = a.live[:0]
	a.surface.Reset()
}
