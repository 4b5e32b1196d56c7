package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole represents the role of a chat message sender.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"

	// ChatRoleAssistantError marks a synthesized assistant message produced
	// when the completion call failed. It renders like a normal assistant
	// message but lets clients offer a retry affordance.
	ChatRoleAssistantError ChatRole = "assistant-error"
)

// ValidChatRoles contains all valid chat role values.
var ValidChatRoles = []ChatRole{
	ChatRoleUser,
	ChatRoleAssistant,
	ChatRoleAssistantError,
}

// IsValidChatRole checks if the given role is valid.
func IsValidChatRole(r ChatRole) bool {
	for _, v := range ValidChatRoles {
		if v == r {
			return true
		}
	}
	return false
}

// ChatMessage is one entry in the compliance assistant conversation log.
// Messages are append-only and never mutated after creation.
type ChatMessage struct {
	ID        uuid.UUID  `json:"id"`
	Role      ChatRole   `json:"role"`
	Content   string     `json:"content"`
	Citations []Citation `json:"citations,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsFromUser returns true if the message is from a user.
func (m *ChatMessage) IsFromUser() bool {
	return m.Role == ChatRoleUser
}

// IsError returns true if the message is a synthesized failure message.
func (m *ChatMessage) IsError() bool {
	return m.Role == ChatRoleAssistantError
}
