package postgresadapter

import (
	"fmt"
	"time"

	"parceltrack/contexts/shipment-tracking/tracking-service/domain/entities"
	"parceltrack/contexts/shipment-tracking/tracking-service/ports"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type shipmentModel struct {
	TrackingNumber string    `gorm:"column:tracking_number;primaryKey"`
	Origin         string    `gorm:"column:origin"`
	Destination    string    `gorm:"column:destination"`
	Recipient      string    `gorm:"column:recipient"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (shipmentModel) TableName() string {
	return "shipments"
}

func shipmentModelFromEntity(shipment entities.Shipment) *shipmentModel {
	return &shipmentModel{
		TrackingNumber: shipment.TrackingNumber,
		Origin:         shipment.Origin,
		Destination:    shipment.Destination,
		Recipient:      shipment.Recipient,
		CreatedAt:      shipment.CreatedAt,
	}
}

func (m shipmentModel) toEntity(events []entities.TrackingEvent) entities.Shipment {
	return entities.Shipment{
		TrackingNumber: m.TrackingNumber,
		Origin:         m.Origin,
		Destination:    m.Destination,
		Recipient:      m.Recipient,
		CreatedAt:      m.CreatedAt,
		Events:         events,
	}
}

type trackingEventModel struct {
	ID             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TrackingNumber string `gorm:"column:tracking_number;index:idx_tracking_events_shipment"`
	Seq            int64  `gorm:"column:seq"`
	Status         string `gorm:"column:status"`
	Location       string `gorm:"column:location"`
	Date           string `gorm:"column:event_date"`
	Time           string `gorm:"column:event_time"`
	Timestamp      int64  `gorm:"column:event_timestamp"`
	Note           string `gorm:"column:note"`
}

func (trackingEventModel) TableName() string {
	return "tracking_events"
}

func trackingEventModelFromEntity(trackingNumber string, seq int64, event entities.TrackingEvent) *trackingEventModel {
	return &trackingEventModel{
		TrackingNumber: trackingNumber,
		Seq:            seq,
		Status:         event.Status,
		Location:       event.Location,
		Date:           event.Date,
		Time:           event.Time,
		Timestamp:      event.Timestamp,
		Note:           event.Note,
	}
}

func (m trackingEventModel) toEntity() entities.TrackingEvent {
	return entities.TrackingEvent{
		Status:    m.Status,
		Location:  m.Location,
		Date:      m.Date,
		Time:      m.Time,
		Timestamp: m.Timestamp,
		Note:      m.Note,
	}
}

type counterModel struct {
	CounterID string `gorm:"column:counter_id;primaryKey"`
	Value     uint64 `gorm:"column:value"`
}

func (counterModel) TableName() string {
	return "tracking_counters"
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status;index:idx_tracking_outbox_status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "tracking_outbox"
}

func outboxModelFromMessage(message ports.OutboxMessage) *outboxModel {
	return &outboxModel{
		OutboxID:  message.OutboxID,
		EventType: message.EventType,
		Payload:   message.Payload,
		Status:    outboxStatusPending,
		CreatedAt: message.CreatedAt,
	}
}

func (m outboxModel) toMessage() ports.OutboxMessage {
	return ports.OutboxMessage{
		OutboxID:  m.OutboxID,
		EventType: m.EventType,
		Payload:   m.Payload,
		CreatedAt: m.CreatedAt,
	}
}

func formatTrackingNumber(value uint64) string {
	return fmt.Sprintf("%s%06d", trackingNumberPrefix, value)
}
