// File: realtime/client.go
package realtime

import (
	"encoding/json"
	"time"

	"homely/models"
	"homely/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 50 * time.Second
	maxMessageSize = 4096
)

// Client is one authenticated websocket connection. UserID and Role come from the
// validated token, never from the frames the socket sends.
type Client struct {
	UserID string
	Role   string
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte

	closed bool
}

// NewClient wraps an upgraded connection for the given identity.
func NewClient(userID, role string, hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Role:   role,
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
}

// mayJoin enforces room membership scoping: own room always, admin room for admins.
func (c *Client) mayJoin(room string) bool {
	if room == c.UserID {
		return true
	}
	return room == AdminRoom && c.Role == models.RoleAdmin
}

// ReadPump consumes control frames from the socket until it closes. handler receives
// every non-control frame (typing relays and similar client emissions).
func (c *Client) ReadPump(handler func(*Client, Frame)) {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				utils.GetLogger().Warn("realtime: websocket error", zap.Error(err))
			}
			break
		}

		var frame Frame
		if err := json.Unmarshal(message, &frame); err != nil {
			continue
		}

		switch frame.Event {
		case EventJoinRoom:
			c.Hub.JoinRoom(c, frame.Room)
		case EventLeaveRoom:
			c.Hub.LeaveRoom(c, frame.Room)
		default:
			if handler != nil {
				handler(c, frame)
			}
		}
	}
}

// WritePump drains the send queue onto the socket and keeps the connection alive
// with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
