package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type booking struct {
	ID     string
	Status string
}

func bookingID(b booking) string { return b.ID }

func TestUpsertByID_UpdatesInPlace(t *testing.T) {
	list := []booking{{ID: "1", Status: "pending"}, {ID: "2", Status: "assigned"}}

	list = UpsertByID(list, booking{ID: "1", Status: "assigned"}, bookingID)

	require.Len(t, list, 2)
	assert.Equal(t, "assigned", list[0].Status)
	assert.Equal(t, "1", list[0].ID, "order must be preserved")
}

func TestUpsertByID_AppendsUnknown(t *testing.T) {
	list := []booking{{ID: "1", Status: "pending"}}

	list = UpsertByID(list, booking{ID: "2", Status: "pending"}, bookingID)

	require.Len(t, list, 2)
	assert.Equal(t, "2", list[1].ID)
}

func TestUpsertByID_OneEntityPerID(t *testing.T) {
	var list []booking
	// Apply a long sequence of updates for a handful of ids; the collection must
	// end with exactly one entity per id holding the last-applied fields.
	statuses := []string{"pending", "assigned", "in-progress", "completed"}
	for _, status := range statuses {
		for _, id := range []string{"a", "b", "c"} {
			list = UpsertByID(list, booking{ID: id, Status: status}, bookingID)
		}
	}

	require.Len(t, list, 3)
	for _, b := range list {
		assert.Equal(t, "completed", b.Status)
	}
}

func TestDeleteByID_RemovesMatch(t *testing.T) {
	list := []booking{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	list = DeleteByID(list, "2", bookingID)

	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "3", list[1].ID)
}

func TestDeleteByID_UnknownIsNoop(t *testing.T) {
	list := []booking{{ID: "1"}}

	list = DeleteByID(list, "2", bookingID)
	list = DeleteByID(list, "2", bookingID)

	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].ID)
}

func TestReconcileMessage_ReplacesByClientID(t *testing.T) {
	sent := time.Now()
	list := []Message{
		{ClientID: "c1", Sender: "user", Text: "hi", Optimistic: true},
	}

	confirmed := Message{ID: "m1", ClientID: "c1", Sender: "user", Text: "hi", CreatedAt: sent}
	list = ReconcileMessage(list, confirmed)

	require.Len(t, list, 1)
	assert.False(t, list[0].Optimistic)
	assert.Equal(t, "m1", list[0].ID)
	assert.Equal(t, sent, list[0].CreatedAt)
}

func TestReconcileMessage_ClientIDDistinguishesIdenticaltexts(t *testing.T) {
	// Two identical optimistic sends in flight: confirmation for one must not
	// consume the other.
	list := []Message{
		{ClientID: "c1", Sender: "user", Text: "hi", Optimistic: true},
		{ClientID: "c2", Sender: "user", Text: "hi", Optimistic: true},
	}

	list = ReconcileMessage(list, Message{ID: "m1", ClientID: "c1", Sender: "user", Text: "hi"})

	require.Len(t, list, 2)
	assert.True(t, list[0].Optimistic)
	assert.Equal(t, "c2", list[0].ClientID)
	assert.Equal(t, "m1", list[1].ID)
}

func TestReconcileMessage_FallbackMatchesSenderText(t *testing.T) {
	list := []Message{
		{Sender: "user", Text: "hi", Optimistic: true},
		{Sender: "user", Text: "other", Optimistic: true},
	}

	list = ReconcileMessage(list, Message{ID: "m1", Sender: "user", Text: "hi"})

	require.Len(t, list, 2)
	assert.Equal(t, "other", list[0].Text)
	assert.Equal(t, "m1", list[1].ID)
}

func TestReconcileMessage_FallbackRemovesAllMatches(t *testing.T) {
	list := []Message{
		{Sender: "user", Text: "hi", Optimistic: true},
		{Sender: "user", Text: "hi", Optimistic: true},
	}

	list = ReconcileMessage(list, Message{ID: "m1", Sender: "user", Text: "hi"})

	require.Len(t, list, 1)
	assert.Equal(t, "m1", list[0].ID)
}

func TestReconcileMessage_KeepsConfirmedEntries(t *testing.T) {
	list := []Message{
		{ID: "m1", Sender: "user", Text: "hi"},
		{ID: "m2", Sender: "model", Text: "hello"},
	}

	list = ReconcileMessage(list, Message{ID: "m3", Sender: "user", Text: "hi"})

	require.Len(t, list, 3)
	assert.Equal(t, "m1", list[0].ID)
	assert.Equal(t, "m3", list[2].ID)
}
