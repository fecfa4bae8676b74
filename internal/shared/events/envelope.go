package events

import "time"

// Envelope is the shared event shape used in parceltrack.
// Outbox rows persist a marshaled Envelope and the worker relay republishes it
// unchanged, so the wire format must stay backward compatible.
type Envelope struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	SourceService  string    `json:"source_service"`
	OccurredAtUTC  time.Time `json:"occurred_at_utc"`
	EntityType     string    `json:"entity_type"`
	EntityID       string    `json:"entity_id"`
	PayloadVersion int       `json:"payload_version"`
	Payload        any       `json:"payload"`
}
