package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"parceltrack/contexts/shipment-tracking/tracking-service/domain/entities"
	domainerrors "parceltrack/contexts/shipment-tracking/tracking-service/domain/errors"
	"parceltrack/contexts/shipment-tracking/tracking-service/ports"
	"parceltrack/internal/shared/events"
)

const (
	sourceService = "shipment-tracking/tracking-service"

	eventTypeShipmentCreated = "shipment.created"
	eventTypeEventAdded      = "shipment.event_added"
)

// Service is the shipment facade. Every mutation is authorized before any
// repository call, so a denied request leaves no partial side effects.
type Service struct {
	Repo        ports.Repository
	Authorizer  ports.Authorizer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// CreateShipmentInput is transport-agnostic input for shipment creation.
// An empty TrackingNumber asks the service to generate one.
type CreateShipmentInput struct {
	TrackingNumber string
	Origin         string
	Destination    string
	Recipient      string
}

func (s Service) CreateShipment(ctx context.Context, identity string, input CreateShipmentInput) (entities.Shipment, error) {
	logger := ResolveLogger(s.Logger)
	if err := s.authorize(ctx, identity, ports.OpShipmentCreate); err != nil {
		return entities.Shipment{}, err
	}

	input.TrackingNumber = strings.TrimSpace(input.TrackingNumber)
	input.Origin = strings.TrimSpace(input.Origin)
	input.Destination = strings.TrimSpace(input.Destination)
	input.Recipient = strings.TrimSpace(input.Recipient)
	if input.Origin == "" || input.Destination == "" {
		return entities.Shipment{}, domainerrors.ErrInvalidShipmentInput
	}

	if input.TrackingNumber == "" {
		number, err := s.Repo.NextTrackingNumber(ctx)
		if err != nil {
			return entities.Shipment{}, err
		}
		input.TrackingNumber = number
	}

	shipment := entities.Shipment{
		TrackingNumber: input.TrackingNumber,
		Origin:         input.Origin,
		Destination:    input.Destination,
		Recipient:      input.Recipient,
		CreatedAt:      s.now(),
		Events:         []entities.TrackingEvent{},
	}

	outbox, err := s.newOutboxMessage(ctx, eventTypeShipmentCreated, shipment.TrackingNumber, shipment)
	if err != nil {
		return entities.Shipment{}, err
	}
	if err := s.Repo.CreateShipment(ctx, shipment, outbox); err != nil {
		return entities.Shipment{}, err
	}

	logger.Info("shipment created",
		"event", "tracking_shipment_created",
		"module", sourceService,
		"layer", "application",
		"tracking_number", shipment.TrackingNumber,
		"origin", shipment.Origin,
		"destination", shipment.Destination,
	)
	return shipment, nil
}

func (s Service) AddTrackingEvent(ctx context.Context, identity string, trackingNumber string, event entities.TrackingEvent) error {
	logger := ResolveLogger(s.Logger)
	if err := s.authorize(ctx, identity, ports.OpShipmentAddEvent); err != nil {
		return err
	}

	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return domainerrors.ErrShipmentNotFound
	}
	if strings.TrimSpace(event.Status) == "" {
		return domainerrors.ErrInvalidTrackingEvent
	}
	if event.Timestamp == 0 {
		event.Timestamp = s.now().UnixNano()
	}

	outbox, err := s.newOutboxMessage(ctx, eventTypeEventAdded, trackingNumber, event)
	if err != nil {
		return err
	}
	if err := s.Repo.AppendEvent(ctx, trackingNumber, event, outbox); err != nil {
		return err
	}

	logger.Info("tracking event appended",
		"event", "tracking_event_appended",
		"module", sourceService,
		"layer", "application",
		"tracking_number", trackingNumber,
		"status", event.Status,
	)
	return nil
}

// GenerateTrackingNumber hands out a fresh number without creating a shipment.
func (s Service) GenerateTrackingNumber(ctx context.Context, identity string) (string, error) {
	if err := s.authorize(ctx, identity, ports.OpShipmentGenerateNumber); err != nil {
		return "", err
	}
	return s.Repo.NextTrackingNumber(ctx)
}

func (s Service) GetShipment(ctx context.Context, identity string, trackingNumber string) (entities.Shipment, error) {
	if err := s.authorize(ctx, identity, ports.OpShipmentRead); err != nil {
		return entities.Shipment{}, err
	}
	return s.Repo.GetShipment(ctx, strings.TrimSpace(trackingNumber))
}

// GetLatestTrackingEvent distinguishes an unknown shipment from one that
// exists with an empty history.
func (s Service) GetLatestTrackingEvent(ctx context.Context, identity string, trackingNumber string) (entities.TrackingEvent, error) {
	if err := s.authorize(ctx, identity, ports.OpShipmentLatestEvent); err != nil {
		return entities.TrackingEvent{}, err
	}
	shipment, err := s.Repo.GetShipment(ctx, strings.TrimSpace(trackingNumber))
	if err != nil {
		return entities.TrackingEvent{}, err
	}
	latest, ok := shipment.LatestEvent()
	if !ok {
		return entities.TrackingEvent{}, domainerrors.ErrNoTrackingEvents
	}
	return latest, nil
}

func (s Service) ListShipments(ctx context.Context, identity string) ([]entities.Shipment, error) {
	if err := s.authorize(ctx, identity, ports.OpShipmentList); err != nil {
		return nil, err
	}
	return s.Repo.ListShipments(ctx)
}

// SeedTestShipments populates demo data. Every call requests fresh generated
// numbers, so repeated seeding never conflicts with earlier runs.
func (s Service) SeedTestShipments(ctx context.Context, identity string) ([]string, error) {
	logger := ResolveLogger(s.Logger)
	if err := s.authorize(ctx, identity, ports.OpShipmentSeed); err != nil {
		return nil, err
	}

	created := make([]string, 0, len(seedTemplates))
	for _, template := range seedTemplates {
		number, err := s.Repo.NextTrackingNumber(ctx)
		if err != nil {
			return created, err
		}

		shipment := entities.Shipment{
			TrackingNumber: number,
			Origin:         template.origin,
			Destination:    template.destination,
			Recipient:      template.recipient,
			CreatedAt:      s.now(),
			Events:         []entities.TrackingEvent{},
		}
		outbox, err := s.newOutboxMessage(ctx, eventTypeShipmentCreated, number, shipment)
		if err != nil {
			return created, err
		}
		if err := s.Repo.CreateShipment(ctx, shipment, outbox); err != nil {
			return created, err
		}

		base := s.now()
		for i, seedEvent := range template.events {
			event := entities.TrackingEvent{
				Status:    seedEvent.status,
				Location:  seedEvent.location,
				Date:      base.Format("2006-01-02"),
				Time:      base.Format("15:04"),
				Timestamp: base.Add(time.Duration(i) * time.Hour).UnixNano(),
				Note:      seedEvent.note,
			}
			eventOutbox, err := s.newOutboxMessage(ctx, eventTypeEventAdded, number, event)
			if err != nil {
				return created, err
			}
			if err := s.Repo.AppendEvent(ctx, number, event, eventOutbox); err != nil {
				return created, err
			}
		}
		created = append(created, number)
	}

	logger.Info("test shipments seeded",
		"event", "tracking_seed_completed",
		"module", sourceService,
		"layer", "application",
		"count", len(created),
	)
	return created, nil
}

func (s Service) authorize(ctx context.Context, identity string, operation string) error {
	if s.Authorizer == nil {
		return domainerrors.ErrForbidden
	}
	if err := s.Authorizer.Authorize(ctx, identity, operation); err != nil {
		ResolveLogger(s.Logger).Warn("operation denied",
			"event", "tracking_operation_denied",
			"module", sourceService,
			"layer", "application",
			"operation", operation,
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) newOutboxMessage(ctx context.Context, eventType string, trackingNumber string, payload any) (ports.OutboxMessage, error) {
	id, err := s.newID(ctx)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	now := s.now()
	envelope := events.Envelope{
		EventID:        id,
		EventType:      eventType,
		SourceService:  sourceService,
		OccurredAtUTC:  now,
		EntityType:     "shipment",
		EntityID:       trackingNumber,
		PayloadVersion: 1,
		Payload:        payload,
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		OutboxID:  id,
		EventType: eventType,
		Payload:   raw,
		CreatedAt: now,
	}, nil
}

func (s Service) newID(ctx context.Context) (string, error) {
	if s.IDGenerator == nil {
		return "", errors.New("id generator is not configured")
	}
	return s.IDGenerator.NewID(ctx)
}

type seedEventTemplate struct {
	status   string
	location string
	note     string
}

type seedTemplate struct {
	origin      string
	destination string
	recipient   string
	events      []seedEventTemplate
}

var seedTemplates = []seedTemplate{
	{
		origin:      "New York, NY",
		destination: "Los Angeles, CA",
		recipient:   "Avery Reed",
		events: []seedEventTemplate{
			{status: "Picked Up", location: "New York, NY", note: "Package received at origin facility"},
			{status: "In Transit", location: "Columbus, OH"},
		},
	},
	{
		origin:      "Seattle, WA",
		destination: "Austin, TX",
		recipient:   "Jordan Blake",
		events: []seedEventTemplate{
			{status: "Picked Up", location: "Seattle, WA"},
			{status: "In Transit", location: "Boise, ID"},
			{status: "Out for Delivery", location: "Austin, TX"},
		},
	},
	{
		origin:      "Chicago, IL",
		destination: "Miami, FL",
		recipient:   "",
		events:      []seedEventTemplate{},
	},
}
