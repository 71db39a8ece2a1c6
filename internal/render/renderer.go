// Package render draws the persistent stroke surface and per-frame feedback
// over the mirrored camera feed using GoCV.
package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/canvas"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/detector"
)

// Overlay carries the transient per-frame feedback: the hand skeleton, the
// newest live-stroke segment, and the cursor marker.
type Overlay struct {
	Hand       *detector.HandLandmarks
	SegmentA   canvas.Point
	SegmentB   canvas.Point
	HasSegment bool
	Cursor     canvas.Point
	HasCursor  bool
	Style      canvas.Style
}

// Renderer composites two logical layers onto each camera frame: a
// persistent layer holding every finalized stroke, redrawn only when the
// surface changes, and a live layer redrawn every frame.
//
// All stroke and cursor coordinates arrive already mirrored (the classifier
// flips x), so the renderer mirrors the camera frame and the raw skeleton
// landmarks to match.
type Renderer struct {
	width  int
	height int

	// Persistent stroke layer on black, with a grayscale mask for
	// compositing onto the frame.
	strokeLayer gocv.Mat
	strokeMask  gocv.Mat
}

// NewRenderer creates a renderer for frames of the given pixel size.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:       width,
		height:      height,
		strokeLayer: gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3),
		strokeMask:  gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC1),
	}
}

// Close releases the layer Mats.
func (r *Renderer) Close() {
	r.strokeLayer.Close()
	r.strokeMask.Close()
}

// RedrawSurface rebuilds the persistent layer from scratch: full clear, then
// every stroke as a connected polyline with round caps and joins. Called
// only when the drawing surface changes.
func (r *Renderer) RedrawSurface(strokes []canvas.Stroke) {
	r.strokeLayer.SetTo(gocv.NewScalar(0, 0, 0, 0))

	for _, stroke := range strokes {
		drawPolyline(&r.strokeLayer, stroke.Points, ParseColor(stroke.Color), stroke.Width)
	}

	r.updateMask()
}

// InkLiveSegment appends the newest live-stroke segment to the stroke layer
// so the in-progress stroke stays visible across frames. The layer is
// rebuilt from the finalized strokes when the stroke ends, which is also
// when the stroke's final style takes effect (and when a discarded tap
// disappears).
func (r *Renderer) InkLiveSegment(a, b canvas.Point, style canvas.Style) {
	c := ParseColor(style.Color)
	thickness := strokeThickness(style.Width)
	gocv.Line(&r.strokeLayer, toPixel(a), toPixel(b), c, thickness)
	radius := thickness / 2
	if radius < 1 {
		radius = 1
	}
	gocv.Circle(&r.strokeLayer, toPixel(a), radius, c, -1)
	gocv.Circle(&r.strokeLayer, toPixel(b), radius, c, -1)

	r.updateMask()
}

// updateMask recomputes the grayscale mask of every inked pixel.
func (r *Renderer) updateMask() {
	gocv.CvtColor(r.strokeLayer, &r.strokeMask, gocv.ColorBGRToGray)
	gocv.Threshold(r.strokeMask, &r.strokeMask, 0, 255, gocv.ThresholdBinary)
}

// Compose mirrors the frame in place, lays the persistent strokes over it,
// and draws the live overlay. The frame must match the renderer's size.
func (r *Renderer) Compose(frame *gocv.Mat, overlay Overlay) {
	// Horizontal mirror so the displayed feed matches the user's
	// left-right sense; stroke coordinates are already in mirrored space.
	gocv.Flip(*frame, frame, 1)

	r.strokeLayer.CopyToWithMask(frame, r.strokeMask)

	if overlay.Hand != nil {
		r.drawSkeleton(frame, overlay.Hand)
	}

	if overlay.HasSegment {
		// Only the tip-to-tip segment of the in-progress stroke; earlier
		// segments are already inked into the stroke layer, so the live
		// redraw stays O(1) per frame.
		c := ParseColor(overlay.Style.Color)
		thickness := strokeThickness(overlay.Style.Width)
		gocv.Line(frame, toPixel(overlay.SegmentA), toPixel(overlay.SegmentB), c, thickness)
	}

	if overlay.HasCursor {
		c := ParseColor(overlay.Style.Color)
		radius := strokeThickness(overlay.Style.Width)
		gocv.Circle(frame, toPixel(overlay.Cursor), radius, c, -1)
	}
}

// EncodeSurfacePNG renders the finalized strokes on a white background and
// returns the PNG encoding, for the analysis collaborator.
func EncodeSurfacePNG(strokes []canvas.Stroke, width, height int) ([]byte, error) {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), height, width, gocv.MatTypeCV8UC3)
	defer img.Close()

	for _, stroke := range strokes {
		drawPolyline(&img, stroke.Points, ParseColor(stroke.Color), stroke.Width)
	}

	buf, err := gocv.IMEncode(".png", img)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// drawPolyline draws the points as connected segments with round caps and
// joins: a line per segment plus a filled disc at every vertex.
func drawPolyline(img *gocv.Mat, points []canvas.Point, c color.RGBA, width float64) {
	if len(points) < 2 {
		return
	}

	thickness := strokeThickness(width)
	for i := 1; i < len(points); i++ {
		gocv.Line(img, toPixel(points[i-1]), toPixel(points[i]), c, thickness)
	}
	radius := thickness / 2
	if radius < 1 {
		radius = 1
	}
	for _, p := range points {
		gocv.Circle(img, toPixel(p), radius, c, -1)
	}
}

// drawSkeleton draws the hand landmark connections, mirroring the raw
// normalized coordinates into the same space as the flipped frame.
func (r *Renderer) drawSkeleton(frame *gocv.Mat, hand *detector.HandLandmarks) {
	bone := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	joint := color.RGBA{R: 64, G: 200, B: 255, A: 255}

	pixels := [detector.NumLandmarks]image.Point{}
	for i, p := range hand.Points {
		pixels[i] = image.Point{
			X: int((1 - p.X) * float64(r.width)),
			Y: int(p.Y * float64(r.height)),
		}
	}

	for _, conn := range detector.Connections {
		gocv.Line(frame, pixels[conn[0]], pixels[conn[1]], bone, 1)
	}
	for _, p := range pixels {
		gocv.Circle(frame, p, 3, joint, -1)
	}
}

func toPixel(p canvas.Point) image.Point {
	return image.Point{X: int(p.X + 0.5), Y: int(p.Y + 0.5)}
}

func strokeThickness(width float64) int {
	t := int(width + 0.5)
	if t < 1 {
		t = 1
	}
	return t
}
