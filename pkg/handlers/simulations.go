package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reglens-inc/reglens-engine/pkg/apperrors"
	"github.com/reglens-inc/reglens-engine/pkg/models"
	"github.com/reglens-inc/reglens-engine/pkg/services"
)

// CreateSimulationRequest for POST /api/simulations
type CreateSimulationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Standard    string `json:"standard"`
}

// UpdateSimulationRequest for PATCH /api/simulations/{id}.
// Absent fields are left unchanged.
type UpdateSimulationRequest struct {
	Title       *string                  `json:"title,omitempty"`
	Description *string                  `json:"description,omitempty"`
	Status      *models.SimulationStatus `json:"status,omitempty"`
}

// AddFindingRequest for POST /api/simulations/{id}/findings
type AddFindingRequest struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Severity    models.FindingSeverity `json:"severity"`
	Section     string                 `json:"section"`
	Evidence    string                 `json:"evidence,omitempty"`
}

// SimulationListResponse for GET /api/simulations
type SimulationListResponse struct {
	Simulations []models.AuditSimulation `json:"simulations"`
	Total       int                      `json:"total"`
}

// SimulationsHandler handles audit simulation HTTP requests.
type SimulationsHandler struct {
	simulationService services.SimulationService
	logger            *zap.Logger
}

// NewSimulationsHandler creates a new simulations handler.
func NewSimulationsHandler(simulationService services.SimulationService, logger *zap.Logger) *SimulationsHandler {
	return &SimulationsHandler{simulationService: simulationService, logger: logger}
}

// RegisterRoutes registers the simulations handler's routes on the given mux.
func (h *SimulationsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/simulations", h.List)
	mux.HandleFunc("POST /api/simulations", h.Create)
	mux.HandleFunc("GET /api/simulations/stats", h.Stats)
	mux.HandleFunc("GET /api/simulations/{id}", h.Get)
	mux.HandleFunc("PATCH /api/simulations/{id}", h.Update)
	mux.HandleFunc("DELETE /api/simulations/{id}", h.Delete)
	mux.HandleFunc("POST /api/simulations/{id}/findings", h.AddFinding)
}

// parseSimulationID extracts and validates the {id} path segment. On
// failure it writes a 400 response and returns false.
func (h *SimulationsHandler) parseSimulationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_id", "Simulation id must be a UUID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return id, true
}

// List handles GET /api/simulations
func (h *SimulationsHandler) List(w http.ResponseWriter, r *http.Request) {
	simulations, err := h.simulationService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list simulations", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_failed", "Failed to load simulations"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	data := SimulationListResponse{Simulations: simulations, Total: len(simulations)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: data}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/simulations/{id}
func (h *SimulationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseSimulationID(w, r)
	if !ok {
		return
	}

	simulation, err := h.simulationService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "simulation_not_found", "No simulation with id "+id.String()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to get simulation", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "get_failed", "Failed to load simulation"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: simulation}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/simulations
func (h *SimulationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Request body must be JSON"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	simulation, err := h.simulationService.Create(r.Context(), services.CreateSimulationInput{
		Title:       req.Title,
		Description: req.Description,
		Standard:    req.Standard,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_simulation", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to create simulation", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "create_failed", "Failed to create simulation"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: simulation}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PATCH /api/simulations/{id}
// An unknown id is a silent no-op and still returns success, preserving the
// store's stale-id semantics.
func (h *SimulationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseSimulationID(w, r)
	if !ok {
		return
	}

	var req UpdateSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Request body must be JSON"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	err := h.simulationService.Update(r.Context(), id, services.SimulationUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		status, code := http.StatusInternalServerError, "update_failed"
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			status, code = http.StatusBadRequest, "invalid_update"
		case errors.Is(err, apperrors.ErrInvalidTransition):
			status, code = http.StatusConflict, "invalid_transition"
		default:
			h.logger.Error("Failed to update simulation", zap.Error(err))
		}
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/simulations/{id}
func (h *SimulationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseSimulationID(w, r)
	if !ok {
		return
	}

	if err := h.simulationService.Delete(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete simulation", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "delete_failed", "Failed to delete simulation"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// AddFinding handles POST /api/simulations/{id}/findings
func (h *SimulationsHandler) AddFinding(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseSimulationID(w, r)
	if !ok {
		return
	}

	var req AddFindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Request body must be JSON"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	finding, err := h.simulationService.AddFinding(r.Context(), id, services.FindingInput{
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		Section:     req.Section,
		Evidence:    req.Evidence,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_finding", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to add finding", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "finding_failed", "Failed to add finding"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: finding}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Stats handles GET /api/simulations/stats
func (h *SimulationsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.simulationService.Stats(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute simulation stats", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "stats_failed", "Failed to compute stats"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: stats}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
