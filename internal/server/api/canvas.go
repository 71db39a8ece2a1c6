package api

import (
	"net/http"

	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/app"
)

// CanvasHandler handles HTTP requests for the drawing surface.
type CanvasHandler struct {
	app *app.App
}

// NewCanvasHandler creates a new CanvasHandler for the given app.
func NewCanvasHandler(a *app.App) *CanvasHandler {
	return &CanvasHandler{app: a}
}

// ServeHTTP implements the http.Handler interface and routes requests
// for /api/canvas and /api/reset.
func (h *CanvasHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/canvas":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.get(w, r)
	case "/api/reset":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.reset(w, r)
	default:
		http.NotFound(w, r)
	}
}

type canvasResponse struct {
	StrokeCount int    `json:"stroke_count"`
	Mode        string `json:"mode"`
}

// get handles GET /api/canvas and returns a summary of the surface.
func (h *CanvasHandler) get(w http.ResponseWriter, r *http.Request) {
	snap := h.app.Snapshot()
	writeJSON(w, http.StatusOK, canvasResponse{
		StrokeCount: snap.StrokeCount,
		Mode:        string(snap.Mode),
	})
}

// reset handles POST /api/reset and clears all strokes, including one
// currently being drawn.
func (h *CanvasHandler) reset(w http.ResponseWriter, r *http.Request) {
	h.app.ResetCanvas()
	writeJSON(w, http.StatusOK, canvasResponse{StrokeCount: 0, Mode: string(h.app.Snapshot().Mode)})
}
