package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"parceltrack/contexts/shipment-tracking/tracking-service/domain/entities"
	domainerrors "parceltrack/contexts/shipment-tracking/tracking-service/domain/errors"
	"parceltrack/contexts/shipment-tracking/tracking-service/ports"
)

func testOutbox(id string) ports.OutboxMessage {
	return ports.OutboxMessage{OutboxID: id, EventType: "shipment.created", Payload: []byte("{}")}
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.CreateShipment(ctx, entities.Shipment{TrackingNumber: "TRK-1", Origin: "A", Destination: "B"}, testOutbox("o-0")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			event := entities.TrackingEvent{Status: fmt.Sprintf("scan-%d", i), Timestamp: int64(i)}
			if err := store.AppendEvent(ctx, "TRK-1", event, testOutbox(fmt.Sprintf("o-%d", i+1))); err != nil {
				t.Errorf("append %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	shipment, err := store.GetShipment(ctx, "TRK-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(shipment.Events) != n {
		t.Fatalf("expected %d events, got %d", n, len(shipment.Events))
	}
}

func TestGetShipmentReturnsSnapshot(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.CreateShipment(ctx, entities.Shipment{TrackingNumber: "TRK-1", Origin: "A", Destination: "B"}, testOutbox("o-0")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.AppendEvent(ctx, "TRK-1", entities.TrackingEvent{Status: "Picked Up", Timestamp: 1}, testOutbox("o-1")); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	snapshot, err := store.GetShipment(ctx, "TRK-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	snapshot.Events[0].Status = "tampered"

	fresh, err := store.GetShipment(ctx, "TRK-1")
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if fresh.Events[0].Status != "Picked Up" {
		t.Fatalf("snapshot mutation leaked into the store: %q", fresh.Events[0].Status)
	}
}

func TestNextTrackingNumberSkipsExistingKeys(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	// Occupy the number the counter would hand out first.
	if err := store.CreateShipment(ctx, entities.Shipment{TrackingNumber: "TRK-000001", Origin: "A", Destination: "B"}, testOutbox("o-0")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	number, err := store.NextTrackingNumber(ctx)
	if err != nil {
		t.Fatalf("next number failed: %v", err)
	}
	if number == "TRK-000001" {
		t.Fatalf("generator handed out an occupied number")
	}
	if number != "TRK-000002" {
		t.Fatalf("expected TRK-000002, got %q", number)
	}
}

func TestCreateDuplicateRejected(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	shipment := entities.Shipment{TrackingNumber: "TRK-1", Origin: "A", Destination: "B"}
	if err := store.CreateShipment(ctx, shipment, testOutbox("o-0")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err := store.CreateShipment(ctx, shipment, testOutbox("o-1"))
	if err != domainerrors.ErrTrackingNumberConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestOutboxPendingThenPublished(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.CreateShipment(ctx, entities.Shipment{TrackingNumber: "TRK-1", Origin: "A", Destination: "B"}, testOutbox("o-0")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.AppendEvent(ctx, "TRK-1", entities.TrackingEvent{Status: "Picked Up"}, testOutbox("o-1")); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending messages, got %d", len(pending))
	}
	if pending[0].OutboxID != "o-0" || pending[1].OutboxID != "o-1" {
		t.Fatalf("pending messages out of order: %q, %q", pending[0].OutboxID, pending[1].OutboxID)
	}

	if err := store.MarkOutboxPublished(ctx, "o-0", store.Now()); err != nil {
		t.Fatalf("mark published failed: %v", err)
	}
	pending, err = store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	if len(pending) != 1 || pending[0].OutboxID != "o-1" {
		t.Fatalf("expected only o-1 pending, got %+v", pending)
	}
}
