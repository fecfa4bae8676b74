package entities

// Profile is self-service contact data keyed by caller identity.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
