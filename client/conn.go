// Package client is a Go SDK for the realtime channel: one websocket connection
// per authenticated identity, a fixed event vocabulary, and helpers for merging
// pushed events into local collection state.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Identity is the authenticated session a connection belongs to.
type Identity struct {
	UserID string
	Role   string
	Token  string
}

// Frame is the wire format for realtime events in both directions.
type Frame struct {
	Event string          `json:"event"`
	Room  string          `json:"room,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

const (
	maxReconnectAttempts = 8
	baseReconnectDelay   = time.Second
	maxReconnectDelay    = 30 * time.Second
	writeTimeout         = 10 * time.Second
)

var ErrClosed = errors.New("connection closed")

// Conn is one realtime connection bound to a single identity. It owns the socket
// lifecycle: the server joins it to its own room on connect, reconnection is
// automatic with bounded attempts, and Close tears everything down so an
// identity switch starts from a clean slate.
type Conn struct {
	url      string
	identity Identity
	router   *Router

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	ws   *websocket.Conn
	done chan struct{}
}

// Dial opens a connection for the identity and starts the read loop. The returned
// Conn delivers events until Close is called or ctx is cancelled.
func Dial(ctx context.Context, baseURL string, identity Identity) (*Conn, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/ws"
	q := u.Query()
	q.Set("token", identity.Token)
	u.RawQuery = q.Encode()

	cctx, cancel := context.WithCancel(ctx)
	c := &Conn{
		url:      u.String(),
		identity: identity,
		router:   newRouter(),
		ctx:      cctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	ws, _, err := websocket.DefaultDialer.DialContext(cctx, c.url, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	c.ws = ws

	go c.run()
	return c, nil
}

// Identity returns the session this connection was dialed for.
func (c *Conn) Identity() Identity {
	return c.identity
}

// Router exposes the event router consumers bind handler tables to.
func (c *Conn) Router() *Router {
	return c.router
}

// Close tears the connection down. All bound handlers stop receiving events;
// subsequent Emit calls return ErrClosed.
func (c *Conn) Close() error {
	c.cancel()

	c.mu.Lock()
	ws := c.ws
	c.mu.Unlock()
	if ws != nil {
		ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeTimeout))
		ws.Close()
	}

	<-c.done
	return nil
}

// Emit sends a frame to the server (typing relays and similar client emissions).
func (c *Conn) Emit(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	frame := Frame{Event: event, Data: payload}
	raw, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws == nil || c.ctx.Err() != nil {
		return ErrClosed
	}
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, raw)
}

// run reads frames and dispatches them in delivery order. On socket failure it
// reconnects with jittered exponential backoff; after the attempt limit is
// spent the connection goes quiet rather than surfacing an error.
func (c *Conn) run() {
	defer close(c.done)

	attempts := 0
	for {
		c.mu.Lock()
		ws := c.ws
		c.mu.Unlock()

		if ws != nil {
			c.readLoop(ws)
			attempts = 0
		}

		if c.ctx.Err() != nil {
			return
		}

		attempts++
		if attempts > maxReconnectAttempts {
			return
		}

		delay := baseReconnectDelay << (attempts - 1)
		if delay > maxReconnectDelay {
			delay = maxReconnectDelay
		}
		delay += time.Duration(rand.Int63n(int64(delay) / 2))

		select {
		case <-c.ctx.Done():
			return
		case <-time.After(delay):
		}

		ws, _, err := websocket.DefaultDialer.DialContext(c.ctx, c.url, nil)
		if err != nil {
			c.mu.Lock()
			c.ws = nil
			c.mu.Unlock()
			continue
		}
		c.mu.Lock()
		c.ws = ws
		c.mu.Unlock()
	}
}

// readLoop consumes frames until the socket errors. Dispatch is synchronous, so
// handlers observe events in socket-delivery order.
func (c *Conn) readLoop(ws *websocket.Conn) {
	defer func() {
		ws.Close()
		c.mu.Lock()
		if c.ws == ws {
			c.ws = nil
		}
		c.mu.Unlock()
	}()

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}
		c.router.dispatch(frame.Event, frame.Data)
	}
}
