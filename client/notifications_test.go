package client

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationFeed_NewestFirst(t *testing.T) {
	feed := NewNotificationFeed()
	feed.Add(Notification{ID: "1", Message: "first"})
	feed.Add(Notification{ID: "2", Message: "second"})

	entries := feed.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "2", entries[0].ID)
	assert.Equal(t, "1", entries[1].ID)
}

func TestNotificationFeed_EvictsBeyondCap(t *testing.T) {
	feed := NewNotificationFeed()
	for i := 1; i <= 25; i++ {
		feed.Add(Notification{ID: fmt.Sprintf("%d", i), Timestamp: time.Now()})
	}

	entries := feed.List()
	require.Len(t, entries, FeedLimit)

	// The 10 most recent insertions, newest first.
	for i, n := range entries {
		assert.Equal(t, fmt.Sprintf("%d", 25-i), n.ID)
	}
}

func TestNotificationFeed_Clear(t *testing.T) {
	feed := NewNotificationFeed()
	feed.Add(Notification{ID: "1"})
	feed.Clear()

	assert.Zero(t, feed.Len())
	assert.Empty(t, feed.List())
}

func TestNotificationFeed_Unread(t *testing.T) {
	feed := NewNotificationFeed()
	feed.Add(Notification{ID: "1"})
	feed.Add(Notification{ID: "2"})
	feed.Add(Notification{ID: "3"})

	feed.MarkRead("2")

	assert.Equal(t, 2, feed.Unread())

	// Unknown id is a no-op.
	feed.MarkRead("nope")
	assert.Equal(t, 2, feed.Unread())
}
