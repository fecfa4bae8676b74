package services

import (
	"testing"

	"parceltrack/contexts/identity-access/access-service/domain/entities"
)

func TestAuthorizeMatrix(t *testing.T) {
	cases := []struct {
		role      entities.Role
		operation string
		allowed   bool
	}{
		{entities.RoleGuest, OpShipmentRead, true},
		{entities.RoleGuest, OpShipmentLatestEvent, true},
		{entities.RoleGuest, OpShipmentList, false},
		{entities.RoleGuest, OpShipmentCreate, false},
		{entities.RoleGuest, OpShipmentAddEvent, false},
		{entities.RoleGuest, OpShipmentSeed, false},
		{entities.RoleGuest, OpRoleAssign, false},
		{entities.RoleGuest, OpProfileReadOwn, true},
		{entities.RoleUser, OpShipmentRead, true},
		{entities.RoleUser, OpShipmentCreate, false},
		{entities.RoleUser, OpRoleAssign, false},
		{entities.RoleAdmin, OpShipmentCreate, true},
		{entities.RoleAdmin, OpShipmentGenerateNumber, true},
		{entities.RoleAdmin, OpRoleAssign, true},
	}
	for _, tc := range cases {
		if got := Authorize(tc.role, tc.operation); got != tc.allowed {
			t.Fatalf("%s/%s: expected %v, got %v", tc.role, tc.operation, tc.allowed, got)
		}
	}
}

func TestAuthorizeDeniesUnknownOperationsAndRoles(t *testing.T) {
	if Authorize(entities.RoleAdmin, "shipment.delete") {
		t.Fatalf("unknown operation must be denied even for admin")
	}
	if Authorize(entities.Role("owner"), OpShipmentRead) {
		t.Fatalf("unknown role must be denied everywhere")
	}
}
