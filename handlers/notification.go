package handlers

import (
	"net/http"

	"homely/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler serves the per-account notification feed.
type NotificationHandler struct {
	Notifications notification.NotificationService
}

func NewNotificationHandler(notifs notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: notifs}
}

// feedOwner resolves the account id: either an authenticated customer or provider.
func feedOwner(c *gin.Context) (string, bool) {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(string); ok && id != "" {
			return id, true
		}
	}
	if v, exists := c.Get("providerID"); exists {
		if id, ok := v.(string); ok && id != "" {
			return id, true
		}
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	return "", false
}

// RecentHandler returns the newest notifications, capped server-side.
func (h *NotificationHandler) RecentHandler(c *gin.Context) {
	ownerID, ok := feedOwner(c)
	if !ok {
		return
	}

	feed, err := h.Notifications.Recent(ownerID)
	if err != nil {
		getLogger(c).Error("Failed to load notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, feed)
}

// MarkReadHandler marks one notification as read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	ownerID, ok := feedOwner(c)
	if !ok {
		return
	}

	if err := h.Notifications.MarkRead(ownerID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// ClearHandler empties the account's feed.
func (h *NotificationHandler) ClearHandler(c *gin.Context) {
	ownerID, ok := feedOwner(c)
	if !ok {
		return
	}

	if err := h.Notifications.Clear(ownerID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}
