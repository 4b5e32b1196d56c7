package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/reglens-inc/reglens-engine/pkg/catalog"
	"github.com/reglens-inc/reglens-engine/pkg/models"
)

// StandardListResponse for GET /api/standards and the search endpoint.
type StandardListResponse struct {
	Standards []models.RegulatoryStandard `json:"standards"`
	Total     int                         `json:"total"`
}

// StandardsHandler serves the read-only standards catalog.
type StandardsHandler struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewStandardsHandler creates a new standards handler.
func NewStandardsHandler(cat *catalog.Catalog, logger *zap.Logger) *StandardsHandler {
	return &StandardsHandler{catalog: cat, logger: logger}
}

// RegisterRoutes registers the standards handler's routes on the given mux.
func (h *StandardsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/standards", h.List)
	mux.HandleFunc("GET /api/standards/search", h.Search)
	mux.HandleFunc("GET /api/standards/{id}", h.Get)
}

// List handles GET /api/standards
func (h *StandardsHandler) List(w http.ResponseWriter, r *http.Request) {
	standards := h.catalog.Standards()
	data := StandardListResponse{Standards: standards, Total: len(standards)}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: data}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/standards/{id}
func (h *StandardsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	standard, ok := h.catalog.GetStandardByID(id)
	if !ok {
		if err := ErrorResponse(w, http.StatusNotFound, "standard_not_found", "No standard with id "+id); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: standard}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Search handles GET /api/standards/search?q=
// An empty query returns an empty result set, not the full catalog.
func (h *StandardsHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	matches := h.catalog.SearchStandards(query)
	if matches == nil {
		matches = []models.RegulatoryStandard{}
	}
	data := StandardListResponse{Standards: matches, Total: len(matches)}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: data}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
