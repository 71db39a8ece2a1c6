package app

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"

	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/canvas"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/capture"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/detector"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/gesture"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	a := New(Config{Width: 1280, Height: 720})
	a.SetDetector(detector.NewMockDetector())
	t.Cleanup(func() { a.renderer.Close() })

	return a
}

func testFrame(t *testing.T) *gocv.Mat {
	t.Helper()

	frame := gocv.NewMatWithSize(720, 1280, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { frame.Close() })
	return &frame
}

func TestApp_DrawingFramesAccumulateThenFinalize(t *testing.T) {
	a := newTestApp(t)
	frame := testFrame(t)

	positions := []float64{0.30, 0.32, 0.34, 0.36}
	for _, x := range positions {
		hand := detector.PointingLandmarks(x, 0.25)
		a.processFrame(frame, &hand)
	}

	if got := len(a.acc.Live()); got != len(positions) {
		t.Fatalf("live stroke length = %d, want %d", got, len(positions))
	}
	if a.Snapshot().Mode != gesture.ModeDrawing {
		t.Errorf("mode = %q, want drawing", a.Snapshot().Mode)
	}

	// A hovering frame ends the stroke.
	hover := detector.TwoFingerLandmarks(0.38, 0.25)
	a.processFrame(frame, &hover)

	if a.StrokeCount() != 1 {
		t.Fatalf("stroke count = %d, want 1", a.StrokeCount())
	}
	stroke := a.surface.Strokes()[0]
	if len(stroke.Points) != len(positions) {
		t.Errorf("stroke length = %d, want %d", len(stroke.Points), len(positions))
	}
	if len(a.acc.Live()) != 0 {
		t.Errorf("live stroke not cleared after finalize")
	}
	if a.Snapshot().Mode != gesture.ModeHovering {
		t.Errorf("mode = %q, want hovering", a.Snapshot().Mode)
	}
}

func TestApp_SingleTapLeavesNoStroke(t *testing.T) {
	a := newTestApp(t)
	frame := testFrame(t)

	hand := detector.PointingLandmarks(0.5, 0.3)
	a.processFrame(frame, &hand)
	a.processFrame(frame, nil) // hand disappears

	if a.StrokeCount() != 0 {
		t.Errorf("stroke count after single tap = %d, want 0", a.StrokeCount())
	}
}

func TestApp_InterruptedDrawingMakesSeparateStrokes(t *testing.T) {
	a := newTestApp(t)
	frame := testFrame(t)

	draw := func(x float64) {
		hand := detector.PointingLandmarks(x, 0.3)
		a.processFrame(frame, &hand)
	}
	idle := func() {
		hand := detector.FistLandmarks()
		a.processFrame(frame, &hand)
	}

	// First stroke: two points.
	draw(0.30)
	draw(0.32)
	idle()

	// Second stroke: three points.
	draw(0.50)
	draw(0.52)
	draw(0.54)
	idle()

	if a.StrokeCount() != 2 {
		t.Fatalf("stroke count = %d, want 2", a.StrokeCount())
	}
	strokes := a.surface.Strokes()
	if len(strokes[0].Points) != 2 {
		t.Errorf("first stroke length = %d, want 2", len(strokes[0].Points))
	}
	if len(strokes[1].Points) != 3 {
		t.Errorf("second stroke length = %d, want 3", len(strokes[1].Points))
	}
}

func TestApp_NoHandIsIdleAndFinalizes(t *testing.T) {
	a := newTestApp(t)
	frame := testFrame(t)

	hand := detector.PointingLandmarks(0.30, 0.3)
	a.processFrame(frame, &hand)
	hand = detector.PointingLandmarks(0.35, 0.3)
	a.processFrame(frame, &hand)

	a.processFrame(frame, nil)

	snap := a.Snapshot()
	if snap.Mode != gesture.ModeIdle {
		t.Errorf("mode = %q, want idle", snap.Mode)
	}
	if snap.HasCursor {
		t.Error("cursor reported with no hand present")
	}
	if a.StrokeCount() != 1 {
		t.Errorf("stroke count = %d, want 1", a.StrokeCount())
	}
}

func TestApp_StyleAppliedAtFinalizeTime(t *testing.T) {
	a := newTestApp(t)
	frame := testFrame(t)

	if err := a.SetStyle(canvas.Style{Color: "#ff0000", Width: 4}); err != nil {
		t.Fatalf("SetStyle() error = %v", err)
	}

	hand := detector.PointingLandmarks(0.30, 0.3)
	a.processFrame(frame, &hand)
	hand = detector.PointingLandmarks(0.35, 0.3)
	a.processFrame(frame, &hand)

	// Brush changes mid-stroke; the whole stroke comes out in the new style.
	if err := a.SetStyle(canvas.Style{Color: "#0000ff", Width: 9}); err != nil {
		t.Fatalf("SetStyle() error = %v", err)
	}
	a.processFrame(frame, nil)

	stroke := a.surface.Strokes()[0]
	if stroke.Color != "#0000ff" || stroke.Width != 9 {
		t.Errorf("stroke style = %q/%v, want #0000ff/9", stroke.Color, stroke.Width)
	}
}

func TestApp_SetStyleRejectsInvalid(t *testing.T) {
	a := newTestApp(t)

	if err := a.SetStyle(canvas.Style{Color: "red", Width: 0}); err == nil {
		t.Error("SetStyle() with zero width: error = nil, want error")
	}
	if err := a.SetStyle(canvas.Style{Color: "", Width: 3}); err == nil {
		t.Error("SetStyle() with empty color: error = nil, want error")
	}
}

func TestApp_ResetClearsEverything(t *testing.T) {
	a := newTestApp(t)
	frame := testFrame(t)

	hand := detector.PointingLandmarks(0.30, 0.3)
	a.processFrame(frame, &hand)
	hand = detector.PointingLandmarks(0.35, 0.3)
	a.processFrame(frame, &hand)
	a.processFrame(frame, nil)

	hand = detector.PointingLandmarks(0.60, 0.3)
	a.processFrame(frame, &hand)

	a.ResetCanvas()

	if a.StrokeCount() != 0 {
		t.Errorf("stroke count after reset = %d, want 0", a.StrokeCount())
	}
	if len(a.acc.Live()) != 0 {
		t.Errorf("live stroke after reset = %d points, want 0", len(a.acc.Live()))
	}
}

func TestApp_SurfacePNG(t *testing.T) {
	a := newTestApp(t)
	frame := testFrame(t)

	if _, err := a.SurfacePNG(); !errors.Is(err, ErrNoStrokes) {
		t.Errorf("SurfacePNG() on empty surface: error = %v, want ErrNoStrokes", err)
	}

	hand := detector.PointingLandmarks(0.30, 0.3)
	a.processFrame(frame, &hand)
	hand = detector.PointingLandmarks(0.40, 0.35)
	a.processFrame(frame, &hand)
	a.processFrame(frame, nil)

	png, err := a.SurfacePNG()
	if err != nil {
		t.Fatalf("SurfacePNG() error = %v", err)
	}
	if len(png) == 0 {
		t.Error("SurfacePNG() returned empty data")
	}
}

func TestApp_OutputFrameAvailableAfterProcessing(t *testing.T) {
	a := newTestApp(t)

	if _, err := a.OutputFrame(); err == nil {
		t.Error("OutputFrame() before any frame: error = nil, want error")
	}

	frame := testFrame(t)
	a.processFrame(frame, nil)

	out, err := a.OutputFrame()
	if err != nil {
		t.Fatalf("OutputFrame() error = %v", err)
	}
	defer out.Close()

	if out.Cols() != 1280 || out.Rows() != 720 {
		t.Errorf("output frame size = %dx%d, want 1280x720", out.Cols(), out.Rows())
	}
}

func TestApp_StartStop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a := newTestApp(t)

	f := gocv.NewMatWithSize(720, 1280, gocv.MatTypeCV8UC3)
	defer f.Close()
	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{&f}, true))

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !a.Camera().IsOpen() {
		t.Error("camera not open after Start")
	}
	if !a.Snapshot().CameraReady {
		t.Error("camera_ready = false after Start")
	}

	// Start again while running is a no-op.
	if err := a.Start(); err != nil {
		t.Errorf("second Start() error = %v", err)
	}

	a.Stop()
	if a.Camera().IsOpen() {
		t.Error("camera still open after Stop")
	}

	// Stop is idempotent.
	a.Stop()
}

func TestApp_StartSurfacesPermissionError(t *testing.T) {
	a := newTestApp(t)

	cam := capture.NewMockCamera(nil, false)
	cam.SetOpenError(capture.ErrPermissionDenied)
	a.SetCamera(cam)

	err := a.Start()
	if !errors.Is(err, capture.ErrPermissionDenied) {
		t.Fatalf("Start() error = %v, want ErrPermissionDenied", err)
	}
	if a.Snapshot().CameraReady {
		t.Error("camera_ready = true after failed Start")
	}
}
