package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	conversationRepo "homely/database/repository/conversation"
	"homely/models"
	"homely/realtime"
	"homely/services/notification"
	"homely/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown conversation ids.
var ErrNotFound = errors.New("conversation not found")

// assistantFallback is appended as a model message when reply generation fails, so
// the customer's message is never silently unanswered.
const assistantFallback = "Sorry, I couldn't process that right now. An agent will follow up shortly."

// DefaultChatService is the production implementation of ChatService.
type DefaultChatService struct {
	Repo         conversationRepo.ConversationRepository
	Assistant    Assistant
	Notification notification.NotificationService
	Hub          realtime.Publisher
}

// GetOrCreateConversation returns the customer's thread, creating it lazily.
func (s *DefaultChatService) GetOrCreateConversation(customerID string) (*models.Conversation, error) {
	conv, err := s.Repo.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	conv = &models.Conversation{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		Status:      models.ConversationOpen,
		AdminActive: false,
		Messages:    []models.Message{},
	}
	if err := s.Repo.Create(conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// SendMessage persists a customer message, echoes it back with its correlation id,
// and triggers an assistant reply unless an admin holds the thread.
func (s *DefaultChatService) SendMessage(ctx context.Context, customerID string, req SendRequest) (*models.Message, error) {
	conv, err := s.GetOrCreateConversation(customerID)
	if err != nil {
		return nil, err
	}

	// Sending on a closed thread reopens it.
	if conv.Status == models.ConversationClosed {
		if err := s.Repo.UpdateSetDocument(conv.ID, bson.M{"status": models.ConversationOpen}); err != nil {
			return nil, err
		}
		conv.Status = models.ConversationOpen
	}

	msg := models.Message{
		ID:        uuid.NewString(),
		ClientID:  req.ClientID,
		Sender:    models.SenderUser,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.AppendMessage(conv.ID, msg); err != nil {
		return nil, err
	}

	event := MessageEvent{ConversationID: conv.ID, Message: msg}
	s.Hub.Emit(customerID, realtime.EventNewMessage, event)
	s.Hub.EmitAdmins(realtime.EventNewMessage, event)

	if !conv.AdminActive {
		go s.assistantReply(context.Background(), conv.ID, customerID, req.Text)
	}
	return &msg, nil
}

// assistantReply generates and delivers a model answer. A generation failure still
// appends a message so the thread never dangles.
func (s *DefaultChatService) assistantReply(ctx context.Context, conversationID, customerID, text string) {
	reply, err := s.Assistant.Reply(ctx, customerID, text)
	if err != nil {
		utils.GetLogger().Warn("chat: assistant reply failed", zap.Error(err))
		reply = assistantFallback
	}

	msg := models.Message{
		ID:        uuid.NewString(),
		Sender:    models.SenderModel,
		Text:      reply,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.AppendMessage(conversationID, msg); err != nil {
		utils.GetLogger().Error("chat: failed to append assistant message", zap.Error(err))
		return
	}

	event := MessageEvent{ConversationID: conversationID, Message: msg}
	s.Hub.Emit(customerID, realtime.EventNewMessage, event)
	s.Hub.EmitAdmins(realtime.EventNewMessage, event)
}

// AdminReply takes the thread over and delivers a human reply to the customer.
func (s *DefaultChatService) AdminReply(ctx context.Context, conversationID, text string) (*models.Message, error) {
	conv, err := s.Repo.GetByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrNotFound
	}

	if !conv.AdminActive {
		if err := s.Repo.UpdateSetDocument(conversationID, bson.M{"admin_active": true}); err != nil {
			return nil, err
		}
	}

	msg := models.Message{
		ID:        uuid.NewString(),
		Sender:    models.SenderAdmin,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.AppendMessage(conversationID, msg); err != nil {
		return nil, err
	}

	event := MessageEvent{ConversationID: conversationID, Message: msg}
	s.Hub.Emit(conv.CustomerID, realtime.EventNewAdminReply, event)
	s.Hub.Emit(conv.CustomerID, realtime.EventNewMessage, event)
	s.Hub.EmitAdmins(realtime.EventNewMessage, event)

	if _, err := s.Notification.Record(ctx, conv.CustomerID, "admin_reply",
		"A support agent replied to your conversation", map[string]any{
			"conversationId": conversationID,
		}); err != nil {
		utils.GetLogger().Warn("chat: failed to record reply notification", zap.Error(err))
	}
	return &msg, nil
}

// ReleaseAdmin hands the thread back to the assistant.
func (s *DefaultChatService) ReleaseAdmin(conversationID string) error {
	conv, err := s.Repo.GetByID(conversationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return ErrNotFound
	}
	return s.Repo.UpdateSetDocument(conversationID, bson.M{"admin_active": false})
}

// CloseConversation closes the thread and pushes conversationClosed.
func (s *DefaultChatService) CloseConversation(conversationID string) error {
	conv, err := s.Repo.GetByID(conversationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return ErrNotFound
	}

	err = s.Repo.UpdateSetDocument(conversationID, bson.M{
		"status":       models.ConversationClosed,
		"admin_active": false,
	})
	if err != nil {
		return err
	}

	payload := map[string]string{"conversationId": conversationID}
	s.Hub.Emit(conv.CustomerID, realtime.EventConversationClosed, payload)
	s.Hub.EmitAdmins(realtime.EventConversationClosed, payload)
	return nil
}

// RelayTyping forwards a typing indicator to the other side of the thread. Nothing
// is persisted.
func (s *DefaultChatService) RelayTyping(conversationID, sender string) error {
	conv, err := s.Repo.GetByID(conversationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return ErrNotFound
	}

	payload := map[string]string{"conversationId": conversationID, "sender": sender}
	if sender == models.SenderAdmin {
		s.Hub.Emit(conv.CustomerID, realtime.EventUserTyping, payload)
	} else {
		s.Hub.EmitAdmins(realtime.EventUserTyping, payload)
	}
	return nil
}

// ListOpenConversations returns every open thread for the admin inbox.
func (s *DefaultChatService) ListOpenConversations() ([]models.Conversation, error) {
	return s.Repo.GetOpen()
}
