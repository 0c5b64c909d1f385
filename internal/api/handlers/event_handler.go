package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"kitchen-copilot/domain"
	"kitchen-copilot/pkg/realtime"
	"kitchen-copilot/pkg/room"
	"time"
)

const keepAliveInterval = 15 * time.Second

type (
	EventHandler interface {
		StreamRoomEvents(c *fiber.Ctx) error
	}

	eventHandler struct {
		roomService room.RoomService
		hub         *realtime.Hub
	}
)

func NewEventHandler(roomService room.RoomService, hub *realtime.Hub) EventHandler {
	return &eventHandler{
		roomService: roomService,
		hub:         hub,
	}
}

// StreamRoomEvents sends a "room" snapshot followed by one server-sent event
// per change in the room until the client disconnects.
func (h *eventHandler) StreamRoomEvents(c *fiber.Ctx) error {
	snapshot, err := h.roomService.GetRoomSummary(c.Context(), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedGetRoom, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	sub := h.hub.Subscribe(snapshot.ID)
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer sub.Close()

		if err := writeEvent(w, "room", snapshot); err != nil {
			return
		}

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-sub.Events():
				if !ok {
					return
				}
				if err := writeEvent(w, event.Kind, event); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, name string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	return w.Flush()
}
