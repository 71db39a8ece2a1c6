// Package capture provides camera capture functionality using GoCV (OpenCV).
package capture

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// Default camera settings. The drawing canvas matches the frame size.
const (
	DefaultFPS    = 15
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// ErrCameraNotOpen is returned when trying to read from a camera that is not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// ErrNoFrames is returned by playback cameras when the frame sequence is
// exhausted.
var ErrNoFrames = errors.New("no frames available")

// ErrPermissionDenied is returned when the camera device exists but access
// to it was refused. It is retryable: the user can grant access and try
// again without restarting.
var ErrPermissionDenied = errors.New("camera access denied")

// Camera defines the interface for camera capture implementations.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// cameraImpl manages video capture from a camera device using GoCV.
type cameraImpl struct {
	deviceID int
	capture  *gocv.VideoCapture
	mu       sync.Mutex
	running  bool
	fps      int
	width    int
	height   int
}

// NewCamera creates a new Camera with the given device ID, capturing at
// 1280x720.
func NewCamera(deviceID int) Camera {
	return &cameraImpl{
		deviceID: deviceID,
		fps:      DefaultFPS,
		width:    DefaultWidth,
		height:   DefaultHeight,
	}
}

// Open opens the camera for capturing frames at the target resolution.
// A permission failure is reported as ErrPermissionDenied so callers can
// show the user a retryable message instead of a generic open error.
func (c *cameraImpl) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		if deviceAccessDenied(c.deviceID) {
			return fmt.Errorf("open camera %d: %w", c.deviceID, ErrPermissionDenied)
		}
		return fmt.Errorf("open camera %d: %w", c.deviceID, err)
	}

	capture.Set(gocv.VideoCaptureFrameWidth, float64(c.width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(c.height))
	capture.Set(gocv.VideoCaptureFPS, float64(c.fps))

	c.capture = capture
	c.running = true

	return nil
}

// deviceAccessDenied probes the V4L device node to tell a permission
// refusal apart from other open failures.
func deviceAccessDenied(deviceID int) bool {
	f, err := os.Open(fmt.Sprintf("/dev/video%d", deviceID))
	if err != nil {
		return os.IsPermission(err)
	}
	f.Close()
	return false
}

// Close closes the camera and releases resources.
func (c *cameraImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false

	return err
}

// ReadFrame reads a single frame from the camera.
// The caller is responsible for closing the returned Mat.
func (c *cameraImpl) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		return nil, errors.New("failed to read frame from camera")
	}

	if mat.Empty() {
		mat.Close()
		return nil, errors.New("captured frame is empty")
	}

	return &mat, nil
}

// SetFPS sets the frames per second for capture.
// Values less than or equal to 0 are ignored.
func (c *cameraImpl) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fps = fps

	if c.capture != nil {
		c.capture.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

// FPS returns the current frames per second setting.
func (c *cameraImpl) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fps
}

// IsOpen returns true if the camera is currently open and running.
func (c *cameraImpl) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}
