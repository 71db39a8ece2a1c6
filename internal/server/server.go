// Package server provides the HTTP server for the Vision Draw application.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/analysis"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/app"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/server/api"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	App       *app.App
	Store     *store.Store
	Analyzer  analysis.Analyzer
}

// Server represents the HTTP server for the Vision Draw application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.App != nil {
		styleHandler := api.NewStyleHandler(s.config.App)
		s.mux.Handle("/api/style", styleHandler)

		canvasHandler := api.NewCanvasHandler(s.config.App)
		s.mux.Handle("/api/canvas", canvasHandler)
		s.mux.Handle("/api/reset", canvasHandler)

		critiqueHandler := api.NewCritiqueHandler(s.config.App, s.config.Analyzer, s.config.Store)
		s.mux.Handle("/api/analyze", critiqueHandler)
		s.mux.Handle("/api/critiques", critiqueHandler)

		// Live pipeline state over WebSocket
		s.mux.Handle("/api/state", NewStateHandler(s.config.App))

		// Composited output as MJPEG
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.App))
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}
	if s.config.App != nil {
		response["camera_ready"] = s.config.App.Snapshot().CameraReady
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
