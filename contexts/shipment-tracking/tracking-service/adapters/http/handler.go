package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/contexts/shipment-tracking/tracking-service/application"
	"parceltrack/contexts/shipment-tracking/tracking-service/domain/entities"
	httptransport "parceltrack/contexts/shipment-tracking/tracking-service/transport/http"
)

// Handler maps HTTP DTOs to the tracking application service.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateShipmentHandler(ctx context.Context, identity string, request httptransport.CreateShipmentRequest) (httptransport.CreateShipmentResponse, error) {
	shipment, err := h.Service.CreateShipment(ctx, identity, application.CreateShipmentInput{
		TrackingNumber: request.TrackingNumber,
		Origin:         request.Origin,
		Destination:    request.Destination,
		Recipient:      request.Recipient,
	})
	if err != nil {
		return httptransport.CreateShipmentResponse{}, err
	}
	return httptransport.CreateShipmentResponse{Item: shipmentDTO(shipment)}, nil
}

func (h Handler) AddTrackingEventHandler(ctx context.Context, identity string, trackingNumber string, request httptransport.AddTrackingEventRequest) error {
	return h.Service.AddTrackingEvent(ctx, identity, trackingNumber, entities.TrackingEvent{
		Status:    request.Status,
		Location:  request.Location,
		Date:      request.Date,
		Time:      request.Time,
		Timestamp: request.Timestamp,
		Note:      request.Note,
	})
}

func (h Handler) GenerateTrackingNumberHandler(ctx context.Context, identity string) (httptransport.GenerateTrackingNumberResponse, error) {
	number, err := h.Service.GenerateTrackingNumber(ctx, identity)
	if err != nil {
		return httptransport.GenerateTrackingNumberResponse{}, err
	}
	return httptransport.GenerateTrackingNumberResponse{TrackingNumber: number}, nil
}

func (h Handler) GetShipmentHandler(ctx context.Context, identity string, trackingNumber string) (httptransport.GetShipmentResponse, error) {
	shipment, err := h.Service.GetShipment(ctx, identity, trackingNumber)
	if err != nil {
		return httptransport.GetShipmentResponse{}, err
	}
	return httptransport.GetShipmentResponse{Item: shipmentDTO(shipment)}, nil
}

func (h Handler) GetLatestTrackingEventHandler(ctx context.Context, identity string, trackingNumber string) (httptransport.LatestTrackingEventResponse, error) {
	event, err := h.Service.GetLatestTrackingEvent(ctx, identity, trackingNumber)
	if err != nil {
		return httptransport.LatestTrackingEventResponse{}, err
	}
	return httptransport.LatestTrackingEventResponse{Item: trackingEventDTO(event)}, nil
}

func (h Handler) ListShipmentsHandler(ctx context.Context, identity string) (httptransport.ListShipmentsResponse, error) {
	shipments, err := h.Service.ListShipments(ctx, identity)
	if err != nil {
		return httptransport.ListShipmentsResponse{}, err
	}
	items := make([]httptransport.ShipmentDTO, 0, len(shipments))
	for _, shipment := range shipments {
		items = append(items, shipmentDTO(shipment))
	}
	return httptransport.ListShipmentsResponse{Items: items}, nil
}

func (h Handler) SeedShipmentsHandler(ctx context.Context, identity string) (httptransport.SeedShipmentsResponse, error) {
	numbers, err := h.Service.SeedTestShipments(ctx, identity)
	if err != nil {
		return httptransport.SeedShipmentsResponse{}, err
	}
	return httptransport.SeedShipmentsResponse{TrackingNumbers: numbers}, nil
}

func shipmentDTO(shipment entities.Shipment) httptransport.ShipmentDTO {
	events := make([]httptransport.TrackingEventDTO, 0, len(shipment.Events))
	for _, event := range shipment.Events {
		events = append(events, trackingEventDTO(event))
	}
	return httptransport.ShipmentDTO{
		TrackingNumber: shipment.TrackingNumber,
		Origin:         shipment.Origin,
		Destination:    shipment.Destination,
		Recipient:      shipment.Recipient,
		CreatedAt:      shipment.CreatedAt.UTC().Format(time.RFC3339Nano),
		Events:         events,
	}
}

func trackingEventDTO(event entities.TrackingEvent) httptransport.TrackingEventDTO {
	return httptransport.TrackingEventDTO{
		Status:    event.Status,
		Location:  event.Location,
		Date:      event.Date,
		Time:      event.Time,
		Timestamp: event.Timestamp,
		Note:      event.Note,
	}
}
