package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"parceltrack/contexts/shipment-tracking/tracking-service/application"
	"parceltrack/contexts/shipment-tracking/tracking-service/ports"
	"parceltrack/internal/shared/events"
)

// OutboxRelay drains pending shipment outbox rows to the event bus.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	Topic     string
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}
	topic := r.Topic
	if topic == "" {
		topic = "shipment.events"
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list pending failed",
			"event", "tracking_outbox_list_failed",
			"module", "shipment-tracking/tracking-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, message := range pending {
		var envelope events.Envelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			logger.Error("outbox payload decode failed",
				"event", "tracking_outbox_decode_failed",
				"module", "shipment-tracking/tracking-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return err
		}

		if err := r.Publisher.Publish(ctx, topic, envelope); err != nil {
			logger.Error("outbox publish failed",
				"event", "tracking_outbox_publish_failed",
				"module", "shipment-tracking/tracking-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"event_type", message.EventType,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, message.OutboxID, now); err != nil {
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("outbox batch relayed",
			"event", "tracking_outbox_relayed",
			"module", "shipment-tracking/tracking-service",
			"layer", "worker",
			"count", len(pending),
		)
	}
	return nil
}
