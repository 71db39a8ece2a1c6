// Package app wires the camera, hand detector, classifier, accumulator and
// renderer into the Vision Draw frame pipeline.
package app

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"gocv.io/x/gocv"

	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/analysis"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/canvas"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/capture"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/detector"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/gesture"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/render"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while the scene is still.
	IdleFPS = 5
	// ActiveFPS is the frame rate while motion is present.
	ActiveFPS = 15
	// IdleTimeoutMs is how long without motion before dropping back to the
	// idle rate.
	IdleTimeoutMs = 2000
)

// ErrNoStrokes is returned by SurfacePNG when there is nothing to encode.
var ErrNoStrokes = errors.New("drawing surface is empty")

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	Analyzer     analysis.Analyzer
	CameraID     int
	MotionThresh float64
	Width        int
	Height       int
}

// State is a snapshot of the pipeline's UI-facing state.
type State struct {
	Mode        gesture.Mode `json:"mode"`
	Cursor      canvas.Point `json:"cursor"`
	HasCursor   bool         `json:"has_cursor"`
	StrokeCount int          `json:"stroke_count"`
	CameraReady bool         `json:"camera_ready"`
	Color       string       `json:"color"`
	Width       float64      `json:"width"`
}

// App owns the gesture-to-stroke pipeline and its collaborators.
//
// The pipeline itself runs on a single goroutine; everything the server or
// tray touches (style, reset, state snapshots, the latest output frame)
// goes through the mutex, which stands in for the single logical thread
// the design assumes.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	surface    *canvas.Surface
	acc        *canvas.Accumulator
	renderer   *render.Renderer

	style       canvas.Style
	mode        gesture.Mode
	cursor      canvas.Point
	hasCursor   bool
	cameraReady bool
	enabled     bool
	needRedraw  bool

	output    gocv.Mat
	hasOutput bool

	mu     sync.RWMutex
	stopCh chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.Width <= 0 {
		config.Width = capture.DefaultWidth
	}
	if config.Height <= 0 {
		config.Height = capture.DefaultHeight
	}
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	surface := canvas.NewSurface()

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		classifier: gesture.NewClassifier(config.Width, config.Height),
		surface:    surface,
		acc:        canvas.NewAccumulator(surface),
		renderer:   render.NewRenderer(config.Width, config.Height),
		style:      canvas.DefaultStyle(),
		mode:       gesture.ModeIdle,
		enabled:    true,
		needRedraw: true,
		output:     gocv.NewMat(),
	}

	// Brush settings survive restarts even though drawings do not.
	if config.Store != nil {
		a.style = config.Store.Settings().BrushStyle()
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables the drawing pipeline. While disabled,
// frames still tick but every frame is treated as "no hand", so any live
// stroke finalizes immediately.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether the drawing pipeline is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera replaces the camera, for tests and playback.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Style returns the current brush style.
func (a *App) Style() canvas.Style {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.style
}

// SetStyle updates the brush style. A stroke already in progress picks the
// new style up when it finalizes; nothing is restyled per segment. Invalid
// widths are rejected.
func (a *App) SetStyle(style canvas.Style) error {
	if style.Width <= 0 {
		return fmt.Errorf("brush width must be positive, got %v", style.Width)
	}
	if style.Color == "" {
		return fmt.Errorf("brush color must not be empty")
	}

	a.mu.Lock()
	a.style = style
	a.mu.Unlock()

	if a.config.Store != nil {
		if err := a.config.Store.Settings().SaveBrushStyle(style); err != nil {
			log.Printf("Failed to persist brush style: %v", err)
		}
	}
	return nil
}

// ResetCanvas clears the live stroke and every finalized stroke.
func (a *App) ResetCanvas() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acc.Reset()
	a.needRedraw = true
}

// StrokeCount returns the number of finalized strokes on the surface.
func (a *App) StrokeCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.surface.Len()
}

// Snapshot returns the current UI-facing pipeline state.
func (a *App) Snapshot() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return State{
		Mode:        a.mode,
		Cursor:      a.cursor,
		HasCursor:   a.hasCursor,
		StrokeCount: a.surface.Len(),
		CameraReady: a.cameraReady,
		Color:       a.style.Color,
		Width:       a.style.Width,
	}
}

// OutputFrame returns a clone of the latest composited frame, or an error
// if no frame has been rendered yet. The caller owns the returned Mat.
func (a *App) OutputFrame() (*gocv.Mat, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.hasOutput {
		return nil, errors.New("no output frame yet")
	}
	clone := a.output.Clone()
	return &clone, nil
}

// SurfacePNG encodes the current drawing surface as a PNG on white, for
// the analysis collaborator. It is never called from the frame pipeline.
func (a *App) SurfacePNG() ([]byte, error) {
	a.mu.RLock()
	strokes := a.surface.Strokes()
	if len(strokes) == 0 {
		a.mu.RUnlock()
		return nil, ErrNoStrokes
	}
	// Copy stroke headers so encoding can run outside the lock; the point
	// slices are immutable once finalized.
	snapshot := make([]canvas.Stroke, len(strokes))
	copy(snapshot, strokes)
	a.mu.RUnlock()

	return render.EncodeSurfacePNG(snapshot, a.config.Width, a.config.Height)
}

// Start begins the frame pump.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		if errors.Is(err, capture.ErrPermissionDenied) {
			return fmt.Errorf("camera permission denied - grant camera access and retry: %w", err)
		}
		return fmt.Errorf("camera unavailable: %w", err)
	}
	a.cameraReady = true

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPump(a.stopCh)

	log.Println("Drawing pipeline started")
	return nil
}

// Stop halts the frame pump and releases resources. It is idempotent, and
// once it returns no further pipeline runs are observable: a detector call
// still in flight is discarded, not processed.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh == nil {
		return
	}

	close(a.stopCh)
	a.stopCh = nil
	a.cameraReady = false

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Drawing pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Analyzer returns the analysis collaborator, which may be nil.
func (a *App) Analyzer() analysis.Analyzer {
	return a.config.Analyzer
}

// Store returns the backing store, which may be nil.
func (a *App) Store() *store.Store {
	return a.config.Store
}
