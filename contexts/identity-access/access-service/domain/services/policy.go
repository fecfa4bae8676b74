package services

import "parceltrack/contexts/identity-access/access-service/domain/entities"

// Operation names gated by the policy table. Values shared with other
// contexts are plain strings so module boundaries stay import-free.
const (
	OpShipmentRead           = "shipment.read"
	OpShipmentLatestEvent    = "shipment.latest_event"
	OpShipmentList           = "shipment.list"
	OpShipmentCreate         = "shipment.create"
	OpShipmentAddEvent       = "shipment.add_event"
	OpShipmentGenerateNumber = "shipment.generate_number"
	OpShipmentSeed           = "shipment.seed"
	OpRoleAssign             = "role.assign"
	OpProfileReadOwn         = "profile.read_own"
	OpProfileSaveOwn         = "profile.save_own"
	OpProfileReadAny         = "profile.read_any"
)

// minimumRole is the full authorization matrix in one auditable place.
// Operations absent from the table are denied for every role.
var minimumRole = map[string]entities.Role{
	OpShipmentRead:           entities.RoleGuest,
	OpShipmentLatestEvent:    entities.RoleGuest,
	OpShipmentList:           entities.RoleAdmin,
	OpShipmentCreate:         entities.RoleAdmin,
	OpShipmentAddEvent:       entities.RoleAdmin,
	OpShipmentGenerateNumber: entities.RoleAdmin,
	OpShipmentSeed:           entities.RoleAdmin,
	OpRoleAssign:             entities.RoleAdmin,
	OpProfileReadOwn:         entities.RoleGuest,
	OpProfileSaveOwn:         entities.RoleGuest,
	OpProfileReadAny:         entities.RoleGuest,
}

// Authorize reports whether a role may perform an operation.
// Deny is final; callers do not retry.
func Authorize(role entities.Role, operation string) bool {
	required, known := minimumRole[operation]
	if !known {
		return false
	}
	return role.Meets(required)
}
