package client

import (
	"sync"
	"time"
)

// FeedLimit is how many notifications the buffer retains, matching the server's
// recent-feed cap.
const FeedLimit = 10

// Notification is one user-visible alert.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationFeed is a bounded most-recent-first list of alerts. Adding beyond
// the cap evicts the oldest entry.
type NotificationFeed struct {
	mu      sync.Mutex
	entries []Notification
}

func NewNotificationFeed() *NotificationFeed {
	return &NotificationFeed{}
}

// Add inserts at the head, evicting the tail once the cap is reached.
func (f *NotificationFeed) Add(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append([]Notification{n}, f.entries...)
	if len(f.entries) > FeedLimit {
		f.entries = f.entries[:FeedLimit]
	}
}

// MarkRead flags one entry as read. Unknown ids are a no-op.
func (f *NotificationFeed) MarkRead(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].Read = true
			return
		}
	}
}

// Unread counts entries not yet marked read, for badge rendering.
func (f *NotificationFeed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, n := range f.entries {
		if !n.Read {
			count++
		}
	}
	return count
}

// List returns the entries newest first.
func (f *NotificationFeed) List() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Notification, len(f.entries))
	copy(out, f.entries)
	return out
}

// Clear empties the feed.
func (f *NotificationFeed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = nil
}

// Len reports the current feed size.
func (f *NotificationFeed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}
