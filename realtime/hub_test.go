package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"homely/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvFrame(t *testing.T, c *Client) Frame {
	t.Helper()
	select {
	case raw := <-c.Send:
		var frame Frame
		require.NoError(t, json.Unmarshal(raw, &frame))
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return Frame{}
	}
}

func assertNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.Send:
		t.Fatalf("unexpected frame: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	return hub
}

func register(t *testing.T, hub *Hub, userID, role string) *Client {
	t.Helper()
	c := NewClient(userID, role, hub, nil)
	hub.Register(c)
	require.Eventually(t, func() bool {
		return hub.RoomSize(userID) == 1
	}, time.Second, 5*time.Millisecond)
	return c
}

func TestEmitDeliversToOwnRoomOnly(t *testing.T) {
	hub := startHub(t)
	alice := register(t, hub, "alice", models.RoleCustomer)
	bob := register(t, hub, "bob", models.RoleCustomer)

	hub.Emit("alice", EventBookingStatusUpdate, map[string]string{"id": "b1"})

	frame := recvFrame(t, alice)
	assert.Equal(t, EventBookingStatusUpdate, frame.Event)
	assertNoFrame(t, bob)
}

func TestAdminLandsInAdminRoom(t *testing.T) {
	hub := startHub(t)
	admin := register(t, hub, "admin-1", models.RoleAdmin)
	customer := register(t, hub, "alice", models.RoleCustomer)

	hub.EmitAdmins(EventStatsUpdated, map[string]int{"total": 3})

	frame := recvFrame(t, admin)
	assert.Equal(t, EventStatsUpdated, frame.Event)
	assertNoFrame(t, customer)
}

func TestJoinRoomRefusedForForeignRoom(t *testing.T) {
	hub := startHub(t)
	alice := register(t, hub, "alice", models.RoleCustomer)

	assert.False(t, hub.JoinRoom(alice, "bob"), "customer must not join another user's room")
	assert.False(t, hub.JoinRoom(alice, AdminRoom), "customer must not join the admin room")
	assert.Zero(t, hub.RoomSize("bob"))
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	hub := startHub(t)
	alice := register(t, hub, "alice", models.RoleCustomer)
	bob := register(t, hub, "bob", models.RoleProvider)

	hub.Broadcast(EventServiceAdded, map[string]string{"id": "svc-1"})

	assert.Equal(t, EventServiceAdded, recvFrame(t, alice).Event)
	assert.Equal(t, EventServiceAdded, recvFrame(t, bob).Event)
}

func TestIdentitySwitchLeavesNoMembership(t *testing.T) {
	hub := startHub(t)

	alice := register(t, hub, "alice", models.RoleCustomer)
	hub.Unregister(alice)
	require.Eventually(t, func() bool {
		return hub.RoomSize("alice") == 0
	}, time.Second, 5*time.Millisecond)

	register(t, hub, "bob", models.RoleCustomer)

	// Nothing is left bound to the previous identity's room.
	assert.Zero(t, hub.RoomSize("alice"))
	assert.Equal(t, 1, hub.RoomSize("bob"))

	// The old client's queue is closed so its pumps wind down.
	_, open := <-alice.Send
	assert.False(t, open)
}

func TestUnregisterTwiceIsSafe(t *testing.T) {
	hub := startHub(t)
	alice := register(t, hub, "alice", models.RoleCustomer)

	hub.Unregister(alice)
	hub.Unregister(alice)

	require.Eventually(t, func() bool {
		return hub.RoomSize("alice") == 0
	}, time.Second, 5*time.Millisecond)
}
