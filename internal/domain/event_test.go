package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryEventBus_PublishAndSubscribe(t *testing.T) {
	bus := NewInMemoryEventBus()

	var received []EventPayload
	bus.Subscribe(EventContactCreated, func(ctx context.Context, payload EventPayload) {
		received = append(received, payload)
	})

	event := EventPayload{
		Type:     EventContactCreated,
		TenantID: "t1",
		EntityID: "c1",
	}
	bus.Publish(context.Background(), event)

	assert.Len(t, received, 1)
	assert.Equal(t, event, received[0])
}

func TestInMemoryEventBus_NoSubscribers(t *testing.T) {
	bus := NewInMemoryEventBus()
	// Publishing with no subscribers is a no-op, not a panic.
	bus.Publish(context.Background(), EventPayload{Type: EventDealCreated})
}

func TestInMemoryEventBus_PanickingHandlerIsContained(t *testing.T) {
	bus := NewInMemoryEventBus()

	bus.Subscribe(EventContactSeen, func(ctx context.Context, payload EventPayload) {
		panic("handler blew up")
	})

	called := false
	bus.Subscribe(EventContactSeen, func(ctx context.Context, payload EventPayload) {
		called = true
	})

	bus.Publish(context.Background(), EventPayload{Type: EventContactSeen})
	assert.True(t, called, "second handler should still run")
}

func TestInMemoryEventBus_TypeIsolation(t *testing.T) {
	bus := NewInMemoryEventBus()

	called := false
	bus.Subscribe(EventContactCreated, func(ctx context.Context, payload EventPayload) {
		called = true
	})

	bus.Publish(context.Background(), EventPayload{Type: EventDealCreated})
	assert.False(t, called)
}
