package entities

import "time"

// Shipment is the root record keyed by its immutable tracking number.
// Events holds the append-order history; display order is by timestamp.
type Shipment struct {
	TrackingNumber string          `json:"tracking_number"`
	Origin         string          `json:"origin"`
	Destination    string          `json:"destination"`
	Recipient      string          `json:"recipient,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	Events         []TrackingEvent `json:"events"`
}

// LatestEvent returns the event with the maximum timestamp.
// Ties go to the most recently appended event, so the scan keeps any event
// whose timestamp is >= the best seen so far.
func (s Shipment) LatestEvent() (TrackingEvent, bool) {
	if len(s.Events) == 0 {
		return TrackingEvent{}, false
	}
	latest := s.Events[0]
	for _, event := range s.Events[1:] {
		if event.Timestamp >= latest.Timestamp {
			latest = event
		}
	}
	return latest, true
}
