package handlers

import (
	"errors"
	"net/http"

	"homely/models"
	"homely/services/chat"
	"homely/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler serves the support conversation for customers and the admin inbox.
type ChatHandler struct {
	Chat chat.ChatService
}

func NewChatHandler(chatSvc chat.ChatService) *ChatHandler {
	return &ChatHandler{Chat: chatSvc}
}

// chatError maps service errors to HTTP responses.
func chatError(c *gin.Context, err error, message string) {
	if errors.Is(err, chat.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Conversation not found", err.Error())
		return
	}
	getLogger(c).Error(message, zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, message, "")
}

// GetConversationHandler returns (creating if needed) the customer's thread.
func (h *ChatHandler) GetConversationHandler(c *gin.Context) {
	customerID, ok := authedID(c, "userID")
	if !ok {
		return
	}

	conv, err := h.Chat.GetOrCreateConversation(customerID)
	if err != nil {
		chatError(c, err, "Failed to load conversation")
		return
	}
	c.JSON(http.StatusOK, conv)
}

// SendMessageHandler appends a customer message and echoes it with its clientId.
func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	customerID, ok := authedID(c, "userID")
	if !ok {
		return
	}

	var req chat.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	msg, err := h.Chat.SendMessage(c.Request.Context(), customerID, req)
	if err != nil {
		chatError(c, err, "Failed to send message")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// TypingHandler relays the customer's typing indicator.
func (h *ChatHandler) TypingHandler(c *gin.Context) {
	if _, ok := authedID(c, "userID"); !ok {
		return
	}

	if err := h.Chat.RelayTyping(c.Param("id"), models.SenderUser); err != nil {
		chatError(c, err, "Failed to relay typing")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// ListOpenConversationsHandler returns the admin inbox.
func (h *ChatHandler) ListOpenConversationsHandler(c *gin.Context) {
	conversations, err := h.Chat.ListOpenConversations()
	if err != nil {
		chatError(c, err, "Failed to list conversations")
		return
	}
	c.JSON(http.StatusOK, conversations)
}

// AdminReplyHandler posts a human reply and takes the thread over.
func (h *ChatHandler) AdminReplyHandler(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	msg, err := h.Chat.AdminReply(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		chatError(c, err, "Failed to post reply")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// AdminTypingHandler relays the admin's typing indicator to the customer.
func (h *ChatHandler) AdminTypingHandler(c *gin.Context) {
	if err := h.Chat.RelayTyping(c.Param("id"), models.SenderAdmin); err != nil {
		chatError(c, err, "Failed to relay typing")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// ReleaseConversationHandler hands the thread back to the assistant.
func (h *ChatHandler) ReleaseConversationHandler(c *gin.Context) {
	if err := h.Chat.ReleaseAdmin(c.Param("id")); err != nil {
		chatError(c, err, "Failed to release conversation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation released"})
}

// CloseConversationHandler closes the thread (admin only).
func (h *ChatHandler) CloseConversationHandler(c *gin.Context) {
	if err := h.Chat.CloseConversation(c.Param("id")); err != nil {
		chatError(c, err, "Failed to close conversation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation closed"})
}
