package render

import (
	"bytes"
	"image/color"
	"testing"

	"gocv.io/x/gocv"

	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/canvas"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/detector"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{R: 255, A: 255}},
		{"#00FF00", color.RGBA{G: 255, A: 255}},
		{"blue", color.RGBA{B: 255, G: 122, A: 255}},
		{"  White ", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"", defaultBrush},
		{"#zzzzzz", defaultBrush},
		{"#f00", defaultBrush},
		{"chartreuse", defaultBrush},
	}

	for _, tt := range tests {
		if got := ParseColor(tt.in); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRenderer_RedrawSurfaceMasksInkedPixels(t *testing.T) {
	r := NewRenderer(320, 240)
	defer r.Close()

	strokes := []canvas.Stroke{
		{
			Points: []canvas.Point{{X: 50, Y: 120}, {X: 250, Y: 120}},
			Color:  "#00ff00",
			Width:  8,
		},
	}
	r.RedrawSurface(strokes)

	if gocv.CountNonZero(r.strokeMask) == 0 {
		t.Fatal("stroke mask empty after drawing a stroke")
	}

	// A full clear must drop every inked pixel.
	r.RedrawSurface(nil)
	if n := gocv.CountNonZero(r.strokeMask); n != 0 {
		t.Errorf("stroke mask has %d pixels after redraw with no strokes, want 0", n)
	}
}

func TestRenderer_ComposeOverlaysStrokes(t *testing.T) {
	r := NewRenderer(320, 240)
	defer r.Close()

	r.RedrawSurface([]canvas.Stroke{
		{
			Points: []canvas.Point{{X: 10, Y: 10}, {X: 100, Y: 100}},
			Color:  "white",
			Width:  4,
		},
	})

	frame := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC3)
	defer frame.Close()

	r.Compose(&frame, Overlay{})

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	if gocv.CountNonZero(gray) == 0 {
		t.Error("composited frame has no inked pixels")
	}
}

func TestRenderer_ComposeDrawsCursorAndSegment(t *testing.T) {
	r := NewRenderer(320, 240)
	defer r.Close()
	r.RedrawSurface(nil)

	frame := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC3)
	defer frame.Close()

	hand := detector.PointingLandmarks(0.5, 0.3)
	r.Compose(&frame, Overlay{
		Hand:       &hand,
		SegmentA:   canvas.Point{X: 20, Y: 20},
		SegmentB:   canvas.Point{X: 60, Y: 40},
		HasSegment: true,
		Cursor:     canvas.Point{X: 60, Y: 40},
		HasCursor:  true,
		Style:      canvas.Style{Color: "#ffcc00", Width: 6},
	})

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	if gocv.CountNonZero(gray) == 0 {
		t.Error("overlay drew nothing")
	}
}

func TestEncodeSurfacePNG(t *testing.T) {
	strokes := []canvas.Stroke{
		{
			Points: []canvas.Point{{X: 10, Y: 10}, {X: 50, Y: 50}, {X: 90, Y: 10}},
			Color:  "black",
			Width:  4,
		},
	}

	data, err := EncodeSurfacePNG(strokes, 160, 120)
	if err != nil {
		t.Fatalf("EncodeSurfacePNG() error = %v", err)
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if len(data) < 8 || !bytes.Equal(data[:4], pngMagic) {
		t.Errorf("EncodeSurfacePNG() did not produce a PNG (got %d bytes)", len(data))
	}
}

func TestStrokeThickness(t *testing.T) {
	tests := []struct {
		width float64
		want  int
	}{
		{0, 1},
		{0.4, 1},
		{1, 1},
		{6, 6},
		{6.6, 7},
	}
	for _, tt := range tests {
		if got := strokeThickness(tt.width); got != tt.want {
			t.Errorf("strokeThickness(%v) = %d, want %d", tt.width, got, tt.want)
		}
	}
}
