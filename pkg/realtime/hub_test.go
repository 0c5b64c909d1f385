package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToRoomSubscribers(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("room-1")
	defer sub.Close()
	other := hub.Subscribe("room-2")
	defer other.Close()

	require.NoError(t, hub.Publish(context.Background(), "room-1", EventVotesUpdated))

	select {
	case event := <-sub.Events():
		assert.Equal(t, "room-1", event.RoomID)
		assert.Equal(t, EventVotesUpdated, event.Kind)
	case <-time.After(time.Second):
		t.Fatal("expected event")
	}

	select {
	case event := <-other.Events():
		t.Fatalf("unexpected event %+v", event)
	default:
	}
}

func TestHubDropsWhenSubscriberIsSlow(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("room-1")
	defer sub.Close()

	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Broadcast(Event{RoomID: "room-1", Kind: EventIngredientsUpdated})
	}

	assert.Len(t, sub.Events(), subscriberBuffer)
}

func TestSubscriptionCloseRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("room-1")
	assert.Equal(t, 1, hub.SubscriberCount("room-1"))

	sub.Close()
	sub.Close()

	assert.Equal(t, 0, hub.SubscriberCount("room-1"))
	_, ok := <-sub.Events()
	assert.False(t, ok)
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(context.Context, string, string) error {
	p.calls++
	return assert.AnError
}

func TestNotifySwallowsPublishErrors(t *testing.T) {
	publisher := &failingPublisher{}
	Notify(context.Background(), publisher, "room-1", EventRoomUpdated)
	Notify(context.Background(), nil, "room-1", EventRoomUpdated)
	assert.Equal(t, 1, publisher.calls)
}
