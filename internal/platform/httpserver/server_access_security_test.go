package httpserver

import (
	"net/http"
	"testing"

	accesshttp "parceltrack/contexts/identity-access/access-service/transport/http"
)

func TestCallerRoleEndpointResolvesRoles(t *testing.T) {
	env := newTestEnv(t)

	// Anonymous callers resolve to guest rather than an error.
	resp := env.do(t, http.MethodGet, "/v1/me/role", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("anonymous role: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	var role accesshttp.CallerRoleResponse
	decodeBody(t, resp, &role)
	if role.Role != "guest" {
		t.Fatalf("expected guest, got %q", role.Role)
	}

	admin := env.bootstrapAdmin(t, "admin-1")
	resp = env.do(t, http.MethodGet, "/v1/me/role", admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("admin role: expected 200, got %d", resp.Code)
	}
	decodeBody(t, resp, &role)
	if role.Role != "admin" {
		t.Fatalf("expected admin, got %q", role.Role)
	}

	resp = env.do(t, http.MethodGet, "/v1/me/admin", admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("admin check: expected 200, got %d", resp.Code)
	}
	var adminResp accesshttp.CallerAdminResponse
	decodeBody(t, resp, &adminResp)
	if !adminResp.Admin {
		t.Fatalf("expected admin=true")
	}
}

func TestBootstrapEndpointGrantsOnce(t *testing.T) {
	env := newTestEnv(t)

	// Anonymous callers cannot claim the grant.
	resp := env.do(t, http.MethodPost, "/v1/bootstrap/initial-admin", "", map[string]string{"token": testBootstrapToken})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous bootstrap: expected 401, got %d (%s)", resp.Code, resp.Body.String())
	}

	// A wrong token is rejected without consuming the grant.
	alice := env.token(t, "alice")
	resp = env.do(t, http.MethodPost, "/v1/bootstrap/initial-admin", alice, map[string]string{"token": "wrong"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", resp.Code)
	}
	var body accesshttp.ErrorResponse
	decodeBody(t, resp, &body)
	if body.Code != "invalid_bootstrap_token" {
		t.Fatalf("unexpected error code %q", body.Code)
	}

	resp = env.do(t, http.MethodPost, "/v1/bootstrap/initial-admin", alice, map[string]string{"token": testBootstrapToken})
	if resp.Code != http.StatusNoContent {
		t.Fatalf("bootstrap: expected 204, got %d (%s)", resp.Code, resp.Body.String())
	}

	// The grant is gone for everyone, valid token or not.
	bob := env.token(t, "bob")
	resp = env.do(t, http.MethodPost, "/v1/bootstrap/initial-admin", bob, map[string]string{"token": testBootstrapToken})
	if resp.Code != http.StatusConflict {
		t.Fatalf("second bootstrap: expected 409, got %d", resp.Code)
	}
}

func TestAssignRoleEndpointRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	admin := env.bootstrapAdmin(t, "admin-1")
	guest := env.token(t, "guest-1")

	resp := env.do(t, http.MethodPost, "/v1/users/target/role", guest, map[string]string{"role": "user"})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("guest assign: expected 403, got %d", resp.Code)
	}
	resp = env.do(t, http.MethodPost, "/v1/users/target/role", "", map[string]string{"role": "user"})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("anonymous assign: expected 403, got %d", resp.Code)
	}

	resp = env.do(t, http.MethodPost, "/v1/users/target/role", admin, map[string]string{"role": "superuser"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("invalid role: expected 400, got %d (%s)", resp.Code, resp.Body.String())
	}

	resp = env.do(t, http.MethodPost, "/v1/users/target/role", admin, map[string]string{"role": "user"})
	if resp.Code != http.StatusNoContent {
		t.Fatalf("admin assign: expected 204, got %d (%s)", resp.Code, resp.Body.String())
	}

	target := env.token(t, "target")
	resp = env.do(t, http.MethodGet, "/v1/me/role", target)
	if resp.Code != http.StatusOK {
		t.Fatalf("role read failed: %d", resp.Code)
	}
	var role accesshttp.CallerRoleResponse
	decodeBody(t, resp, &role)
	if role.Role != "user" {
		t.Fatalf("expected user, got %q", role.Role)
	}
}

func TestProfileEndpoints(t *testing.T) {
	env := newTestEnv(t)
	alice := env.token(t, "alice")

	// Own-profile operations need a resolved identity.
	resp := env.do(t, http.MethodGet, "/v1/me/profile", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous profile read: expected 401, got %d", resp.Code)
	}
	resp = env.do(t, http.MethodPut, "/v1/me/profile", "", map[string]string{"name": "Nobody"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous profile save: expected 401, got %d", resp.Code)
	}

	resp = env.do(t, http.MethodGet, "/v1/me/profile", alice)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("missing profile: expected 404, got %d (%s)", resp.Code, resp.Body.String())
	}

	resp = env.do(t, http.MethodPut, "/v1/me/profile", alice, map[string]string{"name": ""})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("empty name: expected 400, got %d", resp.Code)
	}

	resp = env.do(t, http.MethodPut, "/v1/me/profile", alice, map[string]string{
		"name": "Alice", "email": "alice@example.com", "phone": "555-0100",
	})
	if resp.Code != http.StatusNoContent {
		t.Fatalf("save profile: expected 204, got %d (%s)", resp.Code, resp.Body.String())
	}

	resp = env.do(t, http.MethodGet, "/v1/me/profile", alice)
	if resp.Code != http.StatusOK {
		t.Fatalf("own profile read: expected 200, got %d", resp.Code)
	}
	var profile accesshttp.GetProfileResponse
	decodeBody(t, resp, &profile)
	if profile.Item.Name != "Alice" || profile.Item.Email != "alice@example.com" {
		t.Fatalf("unexpected profile payload: %+v", profile.Item)
	}

	// Profiles are readable by identity.
	resp = env.do(t, http.MethodGet, "/v1/users/alice/profile", env.token(t, "bob"))
	if resp.Code != http.StatusOK {
		t.Fatalf("profile by identity: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	decodeBody(t, resp, &profile)
	if profile.Item.Name != "Alice" {
		t.Fatalf("unexpected profile: %+v", profile.Item)
	}
}

func TestMalformedJSONRejected(t *testing.T) {
	env := newTestEnv(t)
	admin := env.bootstrapAdmin(t, "admin-1")

	req := env.do(t, http.MethodPost, "/v1/shipments", admin, "not-an-object")
	if req.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d (%s)", req.Code, req.Body.String())
	}
}
