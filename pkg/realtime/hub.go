package realtime

import (
	"context"
	"sync"
	"time"
)

const subscriberBuffer = 16

type (
	// Hub fans room events out to subscribers inside this process.
	Hub struct {
		mu          sync.RWMutex
		subscribers map[string]map[*Subscription]struct{}
	}

	Subscription struct {
		hub    *Hub
		roomID string
		events chan Event
		once   sync.Once
	}
)

func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]map[*Subscription]struct{})}
}

func (h *Hub) Subscribe(roomID string) *Subscription {
	sub := &Subscription{
		hub:    h,
		roomID: roomID,
		events: make(chan Event, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[roomID] == nil {
		h.subscribers[roomID] = make(map[*Subscription]struct{})
	}
	h.subscribers[roomID][sub] = struct{}{}
	return sub
}

func (h *Hub) Publish(_ context.Context, roomID string, kind string) error {
	h.Broadcast(Event{RoomID: roomID, Kind: kind, At: time.Now()})
	return nil
}

// Broadcast delivers event to every subscriber of its room. Subscribers whose
// buffer is full miss the event.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers[event.RoomID] {
		select {
		case sub.events <- event:
		default:
		}
	}
}

func (h *Hub) SubscriberCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[roomID])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subscribers[sub.roomID]
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subscribers, sub.roomID)
	}
	close(sub.events)
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}
