package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/reglens-inc/reglens-engine/pkg/apperrors"
	"github.com/reglens-inc/reglens-engine/pkg/models"
	"github.com/reglens-inc/reglens-engine/pkg/services"
)

// SendMessageRequest for POST /api/chat/message
type SendMessageRequest struct {
	Message string `json:"message"`
}

// ChatHistoryResponse for GET /api/chat/history
type ChatHistoryResponse struct {
	Messages []models.ChatMessage `json:"messages"`
	Total    int                  `json:"total"`
}

// ChatHandler handles compliance assistant HTTP requests.
type ChatHandler struct {
	chatService services.ChatService
	logger      *zap.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService services.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

// RegisterRoutes registers the chat handler's routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat/message", h.SendMessage)
	mux.HandleFunc("GET /api/chat/history", h.GetHistory)
	mux.HandleFunc("DELETE /api/chat/history", h.ClearHistory)
}

// SendMessage handles POST /api/chat/message
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Request body must be JSON"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	message, err := h.chatService.SendMessage(r.Context(), req.Message)
	if err != nil {
		status, code := http.StatusInternalServerError, "send_failed"
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			status, code = http.StatusBadRequest, "invalid_message"
		case errors.Is(err, apperrors.ErrGenerationInProgress):
			status, code = http.StatusConflict, "generation_in_progress"
		default:
			h.logger.Error("Failed to send message", zap.Error(err))
		}
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: message}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetHistory handles GET /api/chat/history
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatService.History(r.Context())
	if err != nil {
		h.logger.Error("Failed to get chat history", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "history_failed", "Failed to load chat history"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	data := ChatHistoryResponse{Messages: messages, Total: len(messages)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: data}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ClearHistory handles DELETE /api/chat/history
func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.chatService.ClearHistory(r.Context()); err != nil {
		h.logger.Error("Failed to clear chat history", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "clear_failed", "Failed to clear chat history"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
