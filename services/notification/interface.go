package notification

import (
	"context"

	"homely/models"
)

// NotificationService records user-visible alerts and mirrors them to FCM push.
// Realtime delivery of the underlying domain event is the caller's job; this service
// owns only the stored feed and the push mirror.
type NotificationService interface {
	Record(ctx context.Context, userID, notifType, message string, data map[string]any) (*models.Notification, error)
	Recent(userID string) ([]models.Notification, error)
	MarkRead(userID, id string) error
	Clear(userID string) error
}
