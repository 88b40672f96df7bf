package chat

import (
	"context"

	"homely/models"
)

// ChatService owns support conversations: one lazily-created thread per customer,
// answered by the assistant until an admin takes the thread over.
type ChatService interface {
	GetOrCreateConversation(customerID string) (*models.Conversation, error)
	SendMessage(ctx context.Context, customerID string, req SendRequest) (*models.Message, error)
	AdminReply(ctx context.Context, conversationID, text string) (*models.Message, error)
	ReleaseAdmin(conversationID string) error
	CloseConversation(conversationID string) error
	RelayTyping(conversationID, sender string) error
	ListOpenConversations() ([]models.Conversation, error)
}

// SendRequest is a customer message. ClientID is the optimistic correlation id the
// client generated; the server echoes it back unchanged.
type SendRequest struct {
	ClientID string `json:"clientId"`
	Text     string `json:"text" binding:"required"`
}

// MessageEvent is the payload pushed on newMessage / newAdminReply.
type MessageEvent struct {
	ConversationID string         `json:"conversationId"`
	Message        models.Message `json:"message"`
}

// Assistant produces model replies for a customer's thread. Implemented by the
// Gemini client; faked in tests.
type Assistant interface {
	Reply(ctx context.Context, customerID, text string) (string, error)
}
