package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reglens-inc/reglens-engine/pkg/apperrors"
	"github.com/reglens-inc/reglens-engine/pkg/catalog"
	"github.com/reglens-inc/reglens-engine/pkg/citations"
	"github.com/reglens-inc/reglens-engine/pkg/llm"
	"github.com/reglens-inc/reglens-engine/pkg/models"
	"github.com/reglens-inc/reglens-engine/pkg/prompts"
	"github.com/reglens-inc/reglens-engine/pkg/store"
)

// FallbackContent is the assistant message shown when the completion call
// fails. The failure is converted into this message rather than surfaced as
// an error; the distinct assistant-error role preserves the distinction for
// clients that want to offer a retry.
const FallbackContent = "I apologize, but I'm having trouble accessing my knowledge base right now. " +
	"Please try again in a moment, or browse our regulatory standards directly for the information you need."

// ChatService runs the compliance assistant conversation: prompt assembly,
// the completion call, citation extraction, and the append-only message log.
type ChatService interface {
	// SendMessage appends the user message to the log, generates an
	// assistant reply, appends it, and returns it. A second call while one
	// is pending fails with apperrors.ErrGenerationInProgress. A failed
	// completion does not return an error; it yields an assistant-error
	// message carrying FallbackContent.
	SendMessage(ctx context.Context, message string) (*models.ChatMessage, error)

	// History returns the conversation log in append order.
	History(ctx context.Context) ([]models.ChatMessage, error)

	// ClearHistory resets the conversation log.
	ClearHistory(ctx context.Context) error
}

type chatService struct {
	kv        store.KV
	catalog   *catalog.Catalog
	extractor *citations.Extractor
	client    llm.CompletionClient
	logger    *zap.Logger

	mu         sync.Mutex
	generating bool
}

// NewChatService creates a new chat service.
func NewChatService(
	kv store.KV,
	cat *catalog.Catalog,
	extractor *citations.Extractor,
	client llm.CompletionClient,
	logger *zap.Logger,
) ChatService {
	return &chatService{
		kv:        kv,
		catalog:   cat,
		extractor: extractor,
		client:    client,
		logger:    logger.Named("chat"),
	}
}

var _ ChatService = (*chatService)(nil)

func (s *chatService) SendMessage(ctx context.Context, message string) (*models.ChatMessage, error) {
	if message == "" {
		return nil, fmt.Errorf("%w: message must not be empty", apperrors.ErrValidation)
	}

	if !s.tryBeginGeneration() {
		return nil, apperrors.ErrGenerationInProgress
	}
	defer s.endGeneration()

	userMessage := models.ChatMessage{
		ID:        uuid.New(),
		Role:      models.ChatRoleUser,
		Content:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.appendMessages(ctx, userMessage); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	prompt := prompts.BuildAssistantPrompt(s.catalog.ContextSummary(), message)

	assistantMessage := models.ChatMessage{
		ID:        uuid.New(),
		Role:      models.ChatRoleAssistant,
		CreatedAt: time.Now().UTC(),
	}

	response, err := s.client.Complete(ctx, prompts.AssistantSystemPrompt, prompt)
	if err != nil {
		// Completion failures are terminal for this send: no retry, no
		// propagated error. The user's message stays in the log unchanged.
		s.logger.Warn("Completion failed, returning fallback message",
			zap.String("model", s.client.GetModel()),
			zap.Error(err))
		assistantMessage.Role = models.ChatRoleAssistantError
		assistantMessage.Content = FallbackContent
	} else {
		assistantMessage.Content = response
		assistantMessage.Citations = s.extractor.Extract(response)
	}

	if err := s.appendMessages(ctx, assistantMessage); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	s.logger.Info("Message processed",
		zap.String("role", string(assistantMessage.Role)),
		zap.Int("citations", len(assistantMessage.Citations)))

	return &assistantMessage, nil
}

func (s *chatService) History(ctx context.Context) ([]models.ChatMessage, error) {
	return s.loadMessages(ctx)
}

func (s *chatService) ClearHistory(ctx context.Context) error {
	if err := s.saveMessages(ctx, []models.ChatMessage{}); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}

func (s *chatService) tryBeginGeneration() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating {
		return false
	}
	s.generating = true
	return true
}

func (s *chatService) endGeneration() {
	s.mu.Lock()
	s.generating = false
	s.mu.Unlock()
}

func (s *chatService) appendMessages(ctx context.Context, msgs ...models.ChatMessage) error {
	existing, err := s.loadMessages(ctx)
	if err != nil {
		return err
	}
	return s.saveMessages(ctx, append(existing, msgs...))
}

func (s *chatService) loadMessages(ctx context.Context) ([]models.ChatMessage, error) {
	raw, ok, err := s.kv.Get(ctx, store.KeyChatMessages)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat messages: %w", err)
	}
	if !ok {
		return []models.ChatMessage{}, nil
	}

	var messages []models.ChatMessage
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode chat messages: %w", err)
	}
	return messages, nil
}

func (s *chatService) saveMessages(ctx context.Context, messages []models.ChatMessage) error {
	raw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode chat messages: %w", err)
	}
	return s.kv.Set(ctx, store.KeyChatMessages, raw)
}
