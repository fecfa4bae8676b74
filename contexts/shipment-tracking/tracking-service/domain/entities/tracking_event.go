package entities

// TrackingEvent is one immutable entry in a shipment's history.
// Timestamp is a unix-nanosecond instant used for ordering; Date and Time are
// caller-supplied display strings and are not parsed by the store.
type TrackingEvent struct {
	Status    string `json:"status"`
	Location  string `json:"location"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Timestamp int64  `json:"timestamp"`
	Note      string `json:"note,omitempty"`
}
