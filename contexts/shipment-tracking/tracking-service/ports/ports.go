package ports

import (
	"context"
	"time"

	"parceltrack/contexts/shipment-tracking/tracking-service/domain/entities"
	"parceltrack/internal/shared/events"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for outbox rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Authorizer decides whether a caller identity may perform an operation.
// Operations are the string constants below; implementations deny unknown ones.
type Authorizer interface {
	Authorize(ctx context.Context, identity string, operation string) error
}

// Operation names checked through the Authorizer. The access-service policy
// table is keyed by these values.
const (
	OpShipmentRead           = "shipment.read"
	OpShipmentLatestEvent    = "shipment.latest_event"
	OpShipmentList           = "shipment.list"
	OpShipmentCreate         = "shipment.create"
	OpShipmentAddEvent       = "shipment.add_event"
	OpShipmentGenerateNumber = "shipment.generate_number"
	OpShipmentSeed           = "shipment.seed"
)

// OutboxMessage is a pending event row persisted with the mutation that
// produced it. Payload is a marshaled events.Envelope.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// Repository is the write/read boundary for shipment state.
// CreateShipment fails with ErrTrackingNumberConflict on a duplicate key;
// AppendEvent fails with ErrShipmentNotFound and never reorders prior events.
// NextTrackingNumber advances the shared counter atomically with the
// uniqueness check so concurrent calls can never hand out the same number.
type Repository interface {
	CreateShipment(ctx context.Context, shipment entities.Shipment, outbox OutboxMessage) error
	AppendEvent(ctx context.Context, trackingNumber string, event entities.TrackingEvent, outbox OutboxMessage) error
	GetShipment(ctx context.Context, trackingNumber string) (entities.Shipment, error)
	ListShipments(ctx context.Context) ([]entities.Shipment, error)
	NextTrackingNumber(ctx context.Context) (string, error)
}

// OutboxRepository supports worker relay polling and acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventPublisher emits shipment events to the bus adapter.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}
