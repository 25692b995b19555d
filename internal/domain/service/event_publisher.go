package service

import "context"

// OrderPlacedEvent is published after a checkout commit succeeds, for
// downstream consumers (admin dashboards, fulfilment tooling).
type OrderPlacedEvent struct {
	Reference string  `json:"reference"`
	UserID    string  `json:"user_id"`
	Commune   string  `json:"commune"`
	Total     int64   `json:"total"`
	ItemCount int     `json:"item_count"`
	TotalKg   float64 `json:"total_kg"`
}

// EventPublisher defines the interface for publishing events to a message queue.
type EventPublisher interface {
	// PublishOrderPlaced publishes an order-placed event. Failures are
	// non-fatal for the caller: the order is already durable.
	PublishOrderPlaced(ctx context.Context, event *OrderPlacedEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
