package realtime

import (
	"context"
	"github.com/gofiber/fiber/v2/log"
	"time"
)

const (
	EventParticipantsUpdated = "participants.updated"
	EventIngredientsUpdated  = "ingredients.updated"
	EventConstraintsUpdated  = "constraints.updated"
	EventRoomUpdated         = "room.updated"
	EventRecipesUpdated      = "recipes.updated"
	EventVotesUpdated        = "votes.updated"
)

// Event tells subscribers which part of a room changed. Clients re-read the
// affected collection instead of receiving the data inline.
type Event struct {
	RoomID string    `json:"room_id"`
	Kind   string    `json:"kind"`
	At     time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, roomID string, kind string) error
}

// Notify publishes and logs failures. A lost notification never fails the
// mutation that caused it.
func Notify(ctx context.Context, publisher Publisher, roomID string, kind string) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, roomID, kind); err != nil {
		log.Errorw("failed to publish room event", "room_id", roomID, "kind", kind, "error", err)
	}
}
