package notificationRepo

import "homely/models"

// RecentLimit bounds how many notifications are served per user; the client keeps a
// matching most-recent-first ring buffer.
const RecentLimit = 10

// NotificationRepository defines persistence operations for user notifications.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetRecent(userID string, limit int) ([]models.Notification, error)
	MarkRead(userID, id string) error
	Clear(userID string) error
}
