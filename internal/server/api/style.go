package api

import (
	"encoding/json"
	"net/http"

	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/app"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/canvas"
)

// StyleHandler handles HTTP requests for the active brush style.
type StyleHandler struct {
	app *app.App
}

// NewStyleHandler creates a new StyleHandler for the given app.
func NewStyleHandler(a *app.App) *StyleHandler {
	return &StyleHandler{app: a}
}

// ServeHTTP implements the http.Handler interface.
func (h *StyleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.set(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type styleRequest struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type styleResponse struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// get handles GET /api/style and returns the current brush style.
func (h *StyleHandler) get(w http.ResponseWriter, r *http.Request) {
	style := h.app.Style()
	writeJSON(w, http.StatusOK, styleResponse{Color: style.Color, Width: style.Width})
}

// set handles POST /api/style. The new style applies to strokes that
// finalize after the change, including one currently being drawn.
func (h *StyleHandler) set(w http.ResponseWriter, r *http.Request) {
	var req styleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.app.SetStyle(canvas.Style{Color: req.Color, Width: req.Width}); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	style := h.app.Style()
	writeJSON(w, http.StatusOK, styleResponse{Color: style.Color, Width: style.Width})
}
