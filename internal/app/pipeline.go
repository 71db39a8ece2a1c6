package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/detector"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/gesture"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/render"
)

// runPump is the frame pump: it pulls frames from the camera and drives the
// classify -> accumulate -> render pipeline exactly once per frame, in
// order, before taking the next frame. A single goroutine owns the whole
// loop, so frames can never be processed out of order or overlap.
//
// Rate control follows motion: idle (5 fps, hand detection skipped) while
// the scene is still, active (15 fps, full pipeline) while it moves, back
// to idle after 2s of stillness. Idle frames are treated as "no hand", so
// a live stroke always finalizes when drawing stops.
//
// A failed frame is logged and skipped; nothing in the loop is fatal.
func (a *App) runPump(stopCh <-chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// Hand detection only runs in active mode and while the
			// pipeline is enabled; otherwise the frame counts as
			// "no hand", which still ticks the accumulator so an open
			// stroke finalizes.
			var hand *detector.HandLandmarks
			if activeMode && a.IsEnabled() {
				hands, err := a.Detector().Detect(frame)
				if err != nil {
					log.Printf("Error detecting hands: %v", err)
					frame.Close()
					continue
				}
				if len(hands) > 0 {
					hand = &hands[0]
				}
			}

			// The detector call may have outlived a Stop; discard its
			// result rather than processing it.
			select {
			case <-stopCh:
				frame.Close()
				return
			default:
			}

			a.processFrame(frame, hand)
			frame.Close()
		}
	}
}

// processFrame runs one frame through classify -> accumulate -> render and
// publishes the resulting output frame and UI state. The frame is consumed
// (mirrored and drawn over) but not closed.
func (a *App) processFrame(frame *gocv.Mat, hand *detector.HandLandmarks) {
	result := a.classifier.Classify(hand)

	a.mu.Lock()
	defer a.mu.Unlock()

	// Accumulate: drawing extends the live stroke, anything else
	// finalizes it. Style is read here, under the lock, at finalize time.
	if result.Mode == gesture.ModeDrawing && result.HasCursor {
		a.acc.Extend(result.Cursor)
		if p1, p2, ok := a.acc.LastSegment(); ok {
			a.renderer.InkLiveSegment(p1, p2, a.style)
		}
	} else {
		if a.acc.Finalize(a.style) {
			a.needRedraw = true
		}
	}

	// Persistent layer: full redraw, but only when the surface changed.
	if a.needRedraw {
		a.renderer.RedrawSurface(a.surface.Strokes())
		a.needRedraw = false
	}

	overlay := render.Overlay{
		Hand:      hand,
		Cursor:    result.Cursor,
		HasCursor: result.HasCursor,
		Style:     a.style,
	}
	if result.Mode == gesture.ModeDrawing {
		overlay.SegmentA, overlay.SegmentB, overlay.HasSegment = a.acc.LastSegment()
	}
	a.renderer.Compose(frame, overlay)

	frame.CopyTo(&a.output)
	a.hasOutput = true

	a.mode = result.Mode
	a.cursor = result.Cursor
	a.hasCursor = result.HasCursor
}
