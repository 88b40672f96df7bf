package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_BindAndDispatch(t *testing.T) {
	r := newRouter()

	var got []string
	r.Bind(map[string]Handler{
		EventBookingStatusUpdate: func(data json.RawMessage) {
			got = append(got, string(data))
		},
	})

	r.dispatch(EventBookingStatusUpdate, json.RawMessage(`{"id":"1"}`))
	r.dispatch(EventNewMessage, json.RawMessage(`{}`))

	require.Len(t, got, 1)
	assert.JSONEq(t, `{"id":"1"}`, got[0])
}

func TestRouter_UnbindRemovesExactlyOwnHandlers(t *testing.T) {
	r := newRouter()

	var first, second int
	b1 := r.Bind(map[string]Handler{
		EventNewMessage: func(json.RawMessage) { first++ },
	})
	r.Bind(map[string]Handler{
		EventNewMessage: func(json.RawMessage) { second++ },
	})

	require.Equal(t, 2, r.HandlerCount(EventNewMessage))

	r.Unbind(b1)
	require.Equal(t, 1, r.HandlerCount(EventNewMessage))

	r.dispatch(EventNewMessage, nil)
	assert.Zero(t, first, "unbound handler must not fire")
	assert.Equal(t, 1, second)
}

func TestRouter_UnbindTwiceIsSafe(t *testing.T) {
	r := newRouter()
	b := r.Bind(map[string]Handler{
		EventUserTyping: func(json.RawMessage) {},
	})

	r.Unbind(b)
	r.Unbind(b)
	r.Unbind(nil)

	assert.Zero(t, r.HandlerCount(EventUserTyping))
}

func TestRouter_IdentitySwitchLeavesNoHandlers(t *testing.T) {
	r := newRouter()

	// A full view set bound for one identity, then torn down on switch.
	events := []string{
		EventNewMessage, EventBookingStatusUpdate, EventAppointmentUpdated,
		EventSubscriptionWarning, EventStatsUpdated,
	}
	table := make(map[string]Handler, len(events))
	for _, ev := range events {
		table[ev] = func(json.RawMessage) {}
	}
	b := r.Bind(table)

	r.Unbind(b)

	for _, ev := range events {
		assert.Zerof(t, r.HandlerCount(ev), "event %s still has handlers", ev)
	}
}
