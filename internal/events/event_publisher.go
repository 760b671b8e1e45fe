package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing catalog change events
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// Catalog domain events. Only transitions that changed the catalog are published.
type CatalogItemAddedEvent struct {
	ItemID     int
	Name       string
	Price      string
	Quantity   int
	OccurredAt interface{}
}

type CatalogItemDeletedEvent struct {
	ItemID     int
	Name       string
	Quantity   int
	OccurredAt interface{}
}

type ItemQuantityIncrementedEvent struct {
	ItemID     int
	Name       string
	Quantity   int
	Total      string
	OccurredAt interface{}
}

type ItemQuantityDecrementedEvent struct {
	ItemID     int
	Name       string
	Quantity   int
	Total      string
	OccurredAt interface{}
}

// InMemoryEventPublisher keeps published events in process memory.
// It is the default when no broker is configured.
type InMemoryEventPublisher struct {
	mu     sync.Mutex
	logger *zap.Logger
	events []interface{}
}

func NewEventPublisher(logger *zap.Logger) *InMemoryEventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventPublisher{
		logger: logger,
		events: make([]interface{}, 0),
	}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()

	p.logger.Debug("Event published (in-memory)", zap.String("event-type", EventType(event)))
	return nil
}

// Events returns a copy of everything published so far
func (p *InMemoryEventPublisher) Events() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]interface{}, len(p.events))
	copy(out, p.events)
	return out
}

// EventType returns the event type as string
func EventType(event interface{}) string {
	switch event.(type) {
	case CatalogItemAddedEvent:
		return "CatalogItemAdded"
	case CatalogItemDeletedEvent:
		return "CatalogItemDeleted"
	case ItemQuantityIncrementedEvent:
		return "ItemQuantityIncremented"
	case ItemQuantityDecrementedEvent:
		return "ItemQuantityDecremented"
	default:
		return "Unknown"
	}
}
