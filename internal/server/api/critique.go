package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/analysis"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/app"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/store"
)

const analyzeTimeout = 45 * time.Second

// CritiqueHandler handles HTTP requests for drawing critiques: requesting
// an analysis of the current surface and listing past critiques.
type CritiqueHandler struct {
	app      *app.App
	analyzer analysis.Analyzer
	store    *store.Store
}

// NewCritiqueHandler creates a new CritiqueHandler.
func NewCritiqueHandler(a *app.App, analyzer analysis.Analyzer, s *store.Store) *CritiqueHandler {
	return &CritiqueHandler{app: a, analyzer: analyzer, store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests
// for /api/analyze and /api/critiques.
func (h *CritiqueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/analyze":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.analyze(w, r)
	case "/api/critiques":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
	default:
		http.NotFound(w, r)
	}
}

type critiqueResponse struct {
	ID          string `json:"id"`
	StrokeCount int    `json:"stroke_count"`
	Feedback    string `json:"feedback"`
	CreatedAt   string `json:"created_at"`
}

type listCritiquesResponse struct {
	Critiques []critiqueResponse `json:"critiques"`
}

// toCritiqueResponse converts a store.Critique to a critiqueResponse.
func toCritiqueResponse(c *store.Critique) critiqueResponse {
	return critiqueResponse{
		ID:          c.ID,
		StrokeCount: c.StrokeCount,
		Feedback:    c.Feedback,
		CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// analyze handles POST /api/analyze: it renders the current surface to a
// PNG, sends it off for feedback, and records the result.
func (h *CritiqueHandler) analyze(w http.ResponseWriter, r *http.Request) {
	if h.analyzer == nil {
		writeError(w, http.StatusServiceUnavailable, "Analysis is not configured")
		return
	}

	png, err := h.app.SurfacePNG()
	if err != nil {
		if errors.Is(err, app.ErrNoStrokes) {
			writeError(w, http.StatusBadRequest, "Nothing to analyze: the canvas is empty")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to render canvas")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	feedback, err := h.analyzer.Analyze(ctx, png)
	if err != nil {
		if errors.Is(err, analysis.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "Analysis is not configured")
			return
		}
		writeError(w, http.StatusBadGateway, "Analysis failed: "+err.Error())
		return
	}

	critique := &store.Critique{
		ID:          uuid.NewString(),
		StrokeCount: h.app.StrokeCount(),
		Feedback:    feedback,
	}
	if h.store != nil {
		if err := h.store.Critiques().Create(critique); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save critique")
			return
		}
	}

	writeJSON(w, http.StatusCreated, toCritiqueResponse(critique))
}

// list handles GET /api/critiques and returns saved critiques, newest
// first. A limit query parameter caps the result; it defaults to 20.
func (h *CritiqueHandler) list(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusOK, listCritiquesResponse{Critiques: []critiqueResponse{}})
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = n
	}

	critiques, err := h.store.Critiques().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list critiques")
		return
	}

	resp := listCritiquesResponse{Critiques: make([]critiqueResponse, 0, len(critiques))}
	for _, c := range critiques {
		resp.Critiques = append(resp.Critiques, toCritiqueResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}
