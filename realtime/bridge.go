// File: realtime/bridge.go
package realtime

import (
	"context"
	"encoding/json"

	"homely/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const bridgeChannel = "realtime:frames"

// Bridge relays pushed frames between server instances over Redis pub/sub so any
// instance can reach a user connected elsewhere.
type Bridge struct {
	client *redis.Client
	selfID string
}

type bridgeEnvelope struct {
	Origin string          `json:"origin"`
	Room   string          `json:"room"`
	Frame  json.RawMessage `json:"frame"`
}

// NewBridge creates a relay over the given Redis client. selfID distinguishes this
// instance's own publications so they are not delivered twice.
func NewBridge(client *redis.Client, selfID string) *Bridge {
	return &Bridge{client: client, selfID: selfID}
}

// Relay publishes a frame for other instances to deliver.
func (b *Bridge) Relay(room string, frame []byte) {
	env := bridgeEnvelope{Origin: b.selfID, Room: room, Frame: frame}
	payload, err := json.Marshal(env)
	if err != nil {
		utils.GetLogger().Error("realtime: failed to marshal bridge envelope", zap.Error(err))
		return
	}
	if err := b.client.Publish(context.Background(), bridgeChannel, payload).Err(); err != nil {
		utils.GetLogger().Warn("realtime: bridge publish failed", zap.Error(err))
	}
}

// Listen subscribes to the bridge channel and delivers foreign frames into the hub.
// Blocks; run in a goroutine.
func (b *Bridge) Listen(ctx context.Context, hub *Hub) {
	sub := b.client.Subscribe(ctx, bridgeChannel)
	defer sub.Close()

	for msg := range sub.Channel() {
		var env bridgeEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			utils.GetLogger().Warn("realtime: malformed bridge envelope", zap.Error(err))
			continue
		}
		if env.Origin == b.selfID {
			continue
		}
		hub.deliverLocal(env.Room, env.Frame)
	}
}
