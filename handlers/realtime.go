package handlers

import (
	"net/http"

	"homely/realtime"
	"homely/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// RealtimeHandler upgrades authenticated sockets into hub clients.
type RealtimeHandler struct {
	Hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{Hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers cannot set Authorization on websocket requests, so tokens arrive
	// as a query parameter and origin checking is left to the CORS layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS authenticates the token before upgrading. The client lands in its own
// room immediately; admins also land in the shared admin room.
func (h *RealtimeHandler) ServeWS(c *gin.Context) {
	logger := getLogger(c)

	token := c.Query("token")
	if token == "" {
		token = bearerFromHeader(c)
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	userID, role, err := utils.ExtractClaimsFromToken(token)
	if err != nil || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Websocket upgrade failed", zap.Error(err))
		return
	}

	client := realtime.NewClient(userID, role, h.Hub, conn)
	h.Hub.Register(client)

	go client.WritePump()
	go client.ReadPump(nil)
}

func bearerFromHeader(c *gin.Context) string {
	const prefix = "Bearer "
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > len(prefix) && authHeader[:len(prefix)] == prefix {
		return authHeader[len(prefix):]
	}
	return ""
}
