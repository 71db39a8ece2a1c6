package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/analysis"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/app"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/capture"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/detector"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/server"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/store"
)

// TestE2E_CompleteWorkflow drives the full pipeline end to end: frames from
// a mock camera flow through motion gating, hand detection and gesture
// classification until a stroke lands on the surface, then the HTTP API
// restyles the brush, requests a critique and clears the canvas.
func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	analyzer := &analysis.MockAnalyzer{Feedback: "Bold lines. Try varying the stroke width."}

	application := app.New(app.Config{
		Store:    s,
		Analyzer: analyzer,
		Width:    640,
		Height:   480,
	})

	// Alternating dark and bright frames keep the motion detector firing,
	// which holds the pipeline in active mode where hand detection runs.
	dark := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer dark.Close()
	bright := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(200, 200, 200, 0), 480, 640, gocv.MatTypeCV8UC3)
	defer bright.Close()
	application.SetCamera(capture.NewMockCamera([]*gocv.Mat{&dark, &bright}, true))

	// The scripted hand draws a short diagonal, then drops to a fist so the
	// stroke finalizes. The fist repeats for every later frame.
	mockDetector := detector.NewMockDetector()
	mockDetector.SetSequence([][]detector.HandLandmarks{
		{detector.PointingLandmarks(0.30, 0.30)},
		{detector.PointingLandmarks(0.34, 0.32)},
		{detector.PointingLandmarks(0.38, 0.34)},
		{detector.FistLandmarks()},
	})
	application.SetDetector(mockDetector)

	srv := server.New(server.Config{App: application, Store: s, Analyzer: analyzer})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	if err := application.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer application.Stop()

	t.Run("DrawStroke", func(t *testing.T) {
		deadline := time.Now().Add(10 * time.Second)
		for application.StrokeCount() == 0 {
			if time.Now().After(deadline) {
				t.Fatalf("no stroke finalized; detector calls = %d", mockDetector.Calls())
			}
			time.Sleep(50 * time.Millisecond)
		}

		if got := application.StrokeCount(); got != 1 {
			t.Errorf("stroke count = %d, want 1", got)
		}
	})

	t.Run("HealthReportsCamera", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/health")
		if err != nil {
			t.Fatalf("health request error = %v", err)
		}
		defer resp.Body.Close()

		var health map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
			t.Fatalf("decode health: %v", err)
		}
		if health["camera_ready"] != true {
			t.Errorf("camera_ready = %v, want true", health["camera_ready"])
		}
	})

	t.Run("RestyleBrush", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/style",
			"application/json",
			strings.NewReader(`{"color": "#1e90ff", "width": 10}`),
		)
		if err != nil {
			t.Fatalf("style request error = %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if got := application.Style(); got.Color != "#1e90ff" || got.Width != 10 {
			t.Errorf("style = %q/%v, want #1e90ff/10", got.Color, got.Width)
		}
	})

	t.Run("AnalyzeSketch", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/api/analyze", "application/json", nil)
		if err != nil {
			t.Fatalf("analyze request error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		var critique struct {
			ID       string `json:"id"`
			Feedback string `json:"feedback"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&critique); err != nil {
			t.Fatalf("decode critique: %v", err)
		}
		if critique.Feedback != analyzer.Feedback {
			t.Errorf("feedback = %q, want %q", critique.Feedback, analyzer.Feedback)
		}
		if critique.ID == "" {
			t.Error("critique has no ID")
		}
		if len(analyzer.LastPNG) == 0 {
			t.Error("analyzer received no image data")
		}
	})

	t.Run("ListCritiques", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/critiques")
		if err != nil {
			t.Fatalf("critiques request error = %v", err)
		}
		defer resp.Body.Close()

		var list struct {
			Critiques []struct {
				Feedback string `json:"feedback"`
			} `json:"critiques"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
			t.Fatalf("decode critiques: %v", err)
		}
		if len(list.Critiques) != 1 {
			t.Fatalf("got %d critiques, want 1", len(list.Critiques))
		}
	})

	t.Run("ResetCanvas", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/api/reset", "application/json", nil)
		if err != nil {
			t.Fatalf("reset request error = %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if got := application.StrokeCount(); got != 0 {
			t.Errorf("stroke count after reset = %d, want 0", got)
		}
	})

	t.Run("StreamServesFrames", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/stream", nil)
		if err != nil {
			t.Fatalf("build stream request: %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("stream request error = %v", err)
		}
		defer resp.Body.Close()

		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/x-mixed-replace") {
			t.Errorf("content type = %q, want multipart/x-mixed-replace", ct)
		}

		buf := make([]byte, 64)
		if _, err := resp.Body.Read(buf); err != nil {
			t.Fatalf("read stream: %v", err)
		}
		if !strings.Contains(string(buf), "--frame") {
			t.Errorf("stream body does not start with a frame boundary: %q", buf)
		}
	})
}
