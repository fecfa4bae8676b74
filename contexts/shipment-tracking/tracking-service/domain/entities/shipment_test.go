package entities

import "testing"

func TestLatestEventEmptyHistory(t *testing.T) {
	shipment := Shipment{TrackingNumber: "TRK-1"}

	if _, ok := shipment.LatestEvent(); ok {
		t.Fatalf("expected no latest event for an empty history")
	}
}

func TestLatestEventMaxTimestampWins(t *testing.T) {
	shipment := Shipment{Events: []TrackingEvent{
		{Status: "a", Timestamp: 300},
		{Status: "b", Timestamp: 100},
		{Status: "c", Timestamp: 200},
	}}

	latest, ok := shipment.LatestEvent()
	if !ok {
		t.Fatalf("expected a latest event")
	}
	if latest.Status != "a" {
		t.Fatalf("expected the max-timestamp event, got %q", latest.Status)
	}
}

func TestLatestEventTieGoesToLastAppended(t *testing.T) {
	shipment := Shipment{Events: []TrackingEvent{
		{Status: "first", Timestamp: 100},
		{Status: "second", Timestamp: 100},
	}}

	latest, ok := shipment.LatestEvent()
	if !ok {
		t.Fatalf("expected a latest event")
	}
	if latest.Status != "second" {
		t.Fatalf("tie must go to the later append, got %q", latest.Status)
	}
}
