package domain

import (
	"encoding/json"
	"time"
)

// Topics and event names shared between the order service and its
// downstream consumers.
const (
	TopicOrderEvents = "order_events"

	EventOrderCreated = "OrderCreated"
)

// EventEnvelope is the wire format of every message on the order topics.
type EventEnvelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// OrderSnapshot is the immutable view of an order captured at commit time.
type OrderSnapshot struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderCreatedItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
	Price     int64 `json:"price"`
}

// OrderCreatedEvent is published once per committed order. EventID is the
// outbox row id, stamped by the outbox worker before the message reaches the
// broker; consumers use it as their idempotency key because delivery to any
// single consumer group is at-least-once.
type OrderCreatedEvent struct {
	EventID    int64              `json:"event_id,omitempty"`
	Order      OrderSnapshot      `json:"order"`
	OrderItems []OrderCreatedItem `json:"order_items"`
}
