package domain

import (
	"context"
	"sync"
)

type EventType string

const (
	EventTenantRegistered   EventType = "tenant.registered"
	EventContactCreated     EventType = "contact.created"
	EventContactSeen        EventType = "contact.seen"
	EventSubmissionReceived EventType = "submission.received"
	EventDealCreated        EventType = "deal.created"
	EventDealStageChanged   EventType = "deal.stage_changed"
)

// EventPayload is the data published with an event.
type EventPayload struct {
	Type     EventType              `json:"type"`
	TenantID string                 `json:"tenant_id"`
	EntityID string                 `json:"entity_id"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

type EventHandler func(ctx context.Context, payload EventPayload)

// EventBus lets services publish and subscribe to events through an
// explicit, constructed object whose lifecycle is owned by the application,
// not by package-level state.
type EventBus interface {
	Publish(ctx context.Context, event EventPayload)
	Subscribe(eventType EventType, handler EventHandler)
}

// InMemoryEventBus is a simple in-process EventBus.
type InMemoryEventBus struct {
	subscribers map[EventType][]EventHandler
	mu          sync.RWMutex
}

func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make(map[EventType][]EventHandler),
	}
}

// Publish delivers the event to all subscribers synchronously. Handlers
// that panic are contained so one subscriber cannot take down another.
func (b *InMemoryEventBus) Publish(ctx context.Context, event EventPayload) {
	b.mu.RLock()
	handlers := b.subscribers[event.Type]
	b.mu.RUnlock()

	for _, handler := range handlers {
		func(h EventHandler) {
			defer func() {
				_ = recover()
			}()
			h(ctx, event)
		}(handler)
	}
}

func (b *InMemoryEventBus) Subscribe(eventType EventType, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}
