package entities

import "time"

// BootstrapState records whether the one-time initial-admin grant has been
// consumed, and by whom. There is exactly one of these per deployment.
type BootstrapState struct {
	Consumed   bool      `json:"consumed"`
	GrantedTo  string    `json:"granted_to,omitempty"`
	ConsumedAt time.Time `json:"consumed_at,omitempty"`
}
