package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pushServer is an in-process websocket endpoint that records accepted sockets
// and lets tests push frames down to the client.
type pushServer struct {
	*httptest.Server

	mu      sync.Mutex
	sockets []*websocket.Conn
	tokens  []string
	inbound chan Frame
}

func newPushServer(t *testing.T) *pushServer {
	t.Helper()
	ps := &pushServer{inbound: make(chan Frame, 8)}
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		ps.mu.Lock()
		ps.sockets = append(ps.sockets, ws)
		ps.tokens = append(ps.tokens, r.URL.Query().Get("token"))
		ps.mu.Unlock()

		go func() {
			for {
				var frame Frame
				if err := ws.ReadJSON(&frame); err != nil {
					return
				}
				ps.inbound <- frame
			}
		}()
	}))
	t.Cleanup(ps.Close)
	return ps
}

func (ps *pushServer) push(t *testing.T, frame Frame) {
	t.Helper()
	ps.mu.Lock()
	defer ps.mu.Unlock()
	require.NotEmpty(t, ps.sockets, "no client connected")
	require.NoError(t, ps.sockets[len(ps.sockets)-1].WriteJSON(frame))
}

func (ps *pushServer) lastToken() string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if len(ps.tokens) == 0 {
		return ""
	}
	return ps.tokens[len(ps.tokens)-1]
}

func dialTest(t *testing.T, ps *pushServer, identity Identity) *Conn {
	t.Helper()
	conn, err := Dial(context.Background(), ps.URL, identity)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestDialCarriesTokenAndDispatchesFrames(t *testing.T) {
	ps := newPushServer(t)
	conn := dialTest(t, ps, Identity{UserID: "cust-1", Role: "customer", Token: "tok-1"})

	assert.Equal(t, "tok-1", ps.lastToken())

	got := make(chan json.RawMessage, 1)
	conn.Router().Bind(map[string]Handler{
		EventNewMessage: func(data json.RawMessage) { got <- data },
	})

	ps.push(t, Frame{Event: EventNewMessage, Data: json.RawMessage(`{"text":"hi"}`)})

	select {
	case data := <-got:
		assert.JSONEq(t, `{"text":"hi"}`, string(data))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for dispatch")
	}
}

func TestEmitReachesServer(t *testing.T) {
	ps := newPushServer(t)
	conn := dialTest(t, ps, Identity{UserID: "cust-1", Token: "tok-1"})

	require.NoError(t, conn.Emit(EventUserTyping, map[string]string{"conversationId": "conv-1"}))

	select {
	case frame := <-ps.inbound:
		assert.Equal(t, EventUserTyping, frame.Event)
		assert.JSONEq(t, `{"conversationId":"conv-1"}`, string(frame.Data))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for emitted frame")
	}
}

func TestCloseStopsConnection(t *testing.T) {
	ps := newPushServer(t)
	conn := dialTest(t, ps, Identity{UserID: "cust-1", Token: "tok-1"})

	require.NoError(t, conn.Close())

	err := conn.Emit(EventUserTyping, map[string]string{"conversationId": "conv-1"})
	assert.ErrorIs(t, err, ErrClosed)

	// Close is idempotent.
	require.NoError(t, conn.Close())
}

func TestIdentitySwitchStartsClean(t *testing.T) {
	ps := newPushServer(t)
	first := dialTest(t, ps, Identity{UserID: "cust-1", Token: "tok-1"})

	leaked := make(chan json.RawMessage, 1)
	first.Router().Bind(map[string]Handler{
		EventNewMessage: func(data json.RawMessage) { leaked <- data },
	})
	require.NoError(t, first.Close())

	second := dialTest(t, ps, Identity{UserID: "cust-2", Token: "tok-2"})
	assert.Equal(t, "tok-2", ps.lastToken())
	assert.Zero(t, second.Router().HandlerCount(EventNewMessage),
		"a fresh connection carries no handlers from the previous identity")

	ps.push(t, Frame{Event: EventNewMessage, Data: json.RawMessage(`{"text":"for cust-2"}`)})

	select {
	case data := <-leaked:
		t.Fatalf("handler bound to the closed connection received %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDialRejectedUpgrade(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	_, err := Dial(context.Background(), srv.URL, Identity{UserID: "cust-1", Token: "bad"})
	assert.Error(t, err)
}
