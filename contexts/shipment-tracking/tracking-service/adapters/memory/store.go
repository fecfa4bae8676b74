package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"parceltrack/contexts/shipment-tracking/tracking-service/domain/entities"
	domainerrors "parceltrack/contexts/shipment-tracking/tracking-service/domain/errors"
	"parceltrack/contexts/shipment-tracking/tracking-service/ports"

	"github.com/google/uuid"
)

const trackingNumberPrefix = "TRK-"

// Store is an in-memory adapter implementing the tracking repository and
// outbox ports for local runtime and tests. One mutex covers shipments, the
// tracking counter, and the outbox, so number generation, the uniqueness
// check, and mutation+outbox writes are each a single critical section.
type Store struct {
	mu          sync.RWMutex
	shipments   map[string]entities.Shipment
	order       []string
	sequence    uint64
	outbox      map[string]ports.OutboxMessage
	outboxOrder []string
	outboxSent  map[string]time.Time
}

func NewStore() *Store {
	return &Store{
		shipments:  make(map[string]entities.Shipment),
		outbox:     make(map[string]ports.OutboxMessage),
		outboxSent: make(map[string]time.Time),
	}
}

func (s *Store) CreateShipment(_ context.Context, shipment entities.Shipment, outbox ports.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shipments[shipment.TrackingNumber]; exists {
		return domainerrors.ErrTrackingNumberConflict
	}
	shipment.Events = copyEvents(shipment.Events)
	s.shipments[shipment.TrackingNumber] = shipment
	s.order = append(s.order, shipment.TrackingNumber)
	s.appendOutbox(outbox)
	return nil
}

func (s *Store) AppendEvent(_ context.Context, trackingNumber string, event entities.TrackingEvent, outbox ports.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shipment, exists := s.shipments[trackingNumber]
	if !exists {
		return domainerrors.ErrShipmentNotFound
	}
	shipment.Events = append(copyEvents(shipment.Events), event)
	s.shipments[trackingNumber] = shipment
	s.appendOutbox(outbox)
	return nil
}

func (s *Store) GetShipment(_ context.Context, trackingNumber string) (entities.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shipment, exists := s.shipments[trackingNumber]
	if !exists {
		return entities.Shipment{}, domainerrors.ErrShipmentNotFound
	}
	shipment.Events = copyEvents(shipment.Events)
	return shipment, nil
}

// ListShipments returns a snapshot ordered newest-created first.
func (s *Store) ListShipments(_ context.Context) ([]entities.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Shipment, 0, len(s.order))
	for _, trackingNumber := range s.order {
		shipment := s.shipments[trackingNumber]
		shipment.Events = copyEvents(shipment.Events)
		items = append(items, shipment)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// NextTrackingNumber advances the counter under the store lock and skips any
// number a caller already claimed manually.
func (s *Store) NextTrackingNumber(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		s.sequence++
		candidate := fmt.Sprintf("%s%06d", trackingNumberPrefix, s.sequence)
		if _, exists := s.shipments[candidate]; !exists {
			return candidate, nil
		}
	}
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := make([]ports.OutboxMessage, 0, limit)
	for _, outboxID := range s.outboxOrder {
		if _, sent := s.outboxSent[outboxID]; sent {
			continue
		}
		pending = append(pending, s.outbox[outboxID])
		if limit > 0 && len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.outbox[outboxID]; !exists {
		return nil
	}
	s.outboxSent[outboxID] = publishedAt
	return nil
}

// Now implements ports.Clock.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// NewID implements ports.IDGenerator.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) appendOutbox(message ports.OutboxMessage) {
	if message.OutboxID == "" {
		return
	}
	s.outbox[message.OutboxID] = message
	s.outboxOrder = append(s.outboxOrder, message.OutboxID)
}

func copyEvents(events []entities.TrackingEvent) []entities.TrackingEvent {
	copied := make([]entities.TrackingEvent, len(events))
	copy(copied, events)
	return copied
}
