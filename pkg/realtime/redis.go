package realtime

import (
	"context"
	"encoding/json"
	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
	"strings"
	"time"
)

const channelPrefix = "kitchen-copilot:room:"

// RedisBroker publishes room events on redis so every API instance can relay
// them to its own Hub.
type RedisBroker struct {
	client *redis.Client
	hub    *Hub
}

func NewRedisBroker(client *redis.Client, hub *Hub) *RedisBroker {
	return &RedisBroker{client: client, hub: hub}
}

func (b *RedisBroker) Publish(ctx context.Context, roomID string, kind string) error {
	payload, err := json.Marshal(Event{RoomID: roomID, Kind: kind, At: time.Now()})
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channelPrefix+roomID, payload).Err()
}

// Run relays events from redis into the local hub until ctx is cancelled.
func (b *RedisBroker) Run(ctx context.Context) {
	pubsub := b.client.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Errorw("invalid room event payload", "channel", msg.Channel, "error", err)
				continue
			}
			if event.RoomID == "" {
				event.RoomID = strings.TrimPrefix(msg.Channel, channelPrefix)
			}
			b.hub.Broadcast(event)
		}
	}
}
