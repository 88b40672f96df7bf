package notification

import (
	"context"
	"fmt"
	"time"

	notificationRepo "homely/database/repository/notification"
	providerRepo "homely/database/repository/provider"
	userRepo "homely/database/repository/user"
	"homely/models"
	"homely/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo      notificationRepo.NotificationRepository
	Users     userRepo.UserRepository
	Providers providerRepo.ProviderRepository
}

// Record stores a notification and best-effort mirrors it as an FCM push. The stored
// feed is bounded at read time; the push mirror never fails the caller.
func (s *DefaultNotificationService) Record(ctx context.Context, userID, notifType, message string, data map[string]any) (*models.Notification, error) {
	notif := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      notifType,
		Message:   message,
		Data:      data,
		Read:      false,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(notif); err != nil {
		return nil, fmt.Errorf("failed to record notification: %w", err)
	}

	if token := s.fcmToken(userID); token != "" {
		s.push(ctx, token, notifType, message)
	}
	return notif, nil
}

// Recent returns the user's newest notifications, newest first, capped at the feed
// limit.
func (s *DefaultNotificationService) Recent(userID string) ([]models.Notification, error) {
	return s.Repo.GetRecent(userID, notificationRepo.RecentLimit)
}

// MarkRead flags one notification as read.
func (s *DefaultNotificationService) MarkRead(userID, id string) error {
	return s.Repo.MarkRead(userID, id)
}

// Clear empties the user's notification feed.
func (s *DefaultNotificationService) Clear(userID string) error {
	return s.Repo.Clear(userID)
}

// fcmToken resolves a push token for either account type. Empty when the account
// has none registered.
func (s *DefaultNotificationService) fcmToken(userID string) string {
	if u, err := s.Users.GetByID(userID); err == nil && u != nil {
		return u.FCMToken
	}
	if p, err := s.Providers.GetByID(userID); err == nil && p != nil {
		return p.FCMToken
	}
	return ""
}

func (s *DefaultNotificationService) push(ctx context.Context, token, title, body string) {
	if utils.FCMClient == nil {
		return
	}
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		utils.GetLogger().Warn("notification: FCM push failed", zap.Error(err))
	}
}
