package entities

// Role is the three-valued caller classification. Every identity resolves to
// exactly one role at a time; unseen identities are guests.
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var roleRank = map[Role]int{
	RoleGuest: 0,
	RoleUser:  1,
	RoleAdmin: 2,
}

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Meets reports whether the role satisfies a minimum requirement.
// Unknown roles never satisfy anything.
func (r Role) Meets(minimum Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	required, ok := roleRank[minimum]
	if !ok {
		return false
	}
	return rank >= required
}
