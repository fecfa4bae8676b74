package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"parceltrack/contexts/identity-access/access-service/adapters/memory"
	"parceltrack/contexts/identity-access/access-service/domain/entities"
	domainerrors "parceltrack/contexts/identity-access/access-service/domain/errors"
	domainservices "parceltrack/contexts/identity-access/access-service/domain/services"
)

const testBootstrapToken = "super-secret-token"

func newTestService(store *memory.Store) Service {
	return Service{
		Repo:  store,
		Clock: store,
	}
}

func TestRoleOfDefaultsToGuest(t *testing.T) {
	service := newTestService(memory.NewStore())
	ctx := context.Background()

	role, err := service.RoleOf(ctx, "never-seen")
	if err != nil {
		t.Fatalf("role lookup failed: %v", err)
	}
	if role != entities.RoleGuest {
		t.Fatalf("expected guest for unseen identity, got %q", role)
	}

	role, err = service.RoleOf(ctx, "")
	if err != nil {
		t.Fatalf("anonymous role lookup failed: %v", err)
	}
	if role != entities.RoleGuest {
		t.Fatalf("expected guest for anonymous caller, got %q", role)
	}
}

func TestSetInitialAdminGrantsAdminOnce(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(store)
	ctx := context.Background()

	if err := service.SetInitialAdmin(ctx, "alice", testBootstrapToken, testBootstrapToken); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	isAdmin, err := service.IsAdmin(ctx, "alice")
	if err != nil {
		t.Fatalf("admin check failed: %v", err)
	}
	if !isAdmin {
		t.Fatalf("bootstrap did not grant admin")
	}

	// A second attempt fails regardless of token validity.
	err = service.SetInitialAdmin(ctx, "bob", testBootstrapToken, testBootstrapToken)
	if !errors.Is(err, domainerrors.ErrAlreadyBootstrapped) {
		t.Fatalf("expected already bootstrapped, got %v", err)
	}
	err = service.SetInitialAdmin(ctx, "bob", "wrong", testBootstrapToken)
	if !errors.Is(err, domainerrors.ErrAlreadyBootstrapped) {
		t.Fatalf("expected already bootstrapped for bad token too, got %v", err)
	}

	role, err := service.RoleOf(ctx, "bob")
	if err != nil {
		t.Fatalf("role lookup failed: %v", err)
	}
	if role != entities.RoleGuest {
		t.Fatalf("losing identity must stay guest, got %q", role)
	}
}

func TestSetInitialAdminRejectsBadToken(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(store)
	ctx := context.Background()

	err := service.SetInitialAdmin(ctx, "alice", "wrong", testBootstrapToken)
	if !errors.Is(err, domainerrors.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if store.BootstrapState().Consumed {
		t.Fatalf("failed attempt must not consume the bootstrap")
	}

	// An unset expected token disables the bootstrap entirely.
	err = service.SetInitialAdmin(ctx, "alice", "", "")
	if !errors.Is(err, domainerrors.ErrInvalidToken) {
		t.Fatalf("expected invalid token when none is configured, got %v", err)
	}
}

func TestSetInitialAdminRequiresIdentity(t *testing.T) {
	service := newTestService(memory.NewStore())

	err := service.SetInitialAdmin(context.Background(), "", testBootstrapToken, testBootstrapToken)
	if !errors.Is(err, domainerrors.ErrIdentityRequired) {
		t.Fatalf("expected identity required, got %v", err)
	}
}

func TestSetInitialAdminConcurrentAttemptsGrantExactlyOne(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(store)
	ctx := context.Background()

	identities := []string{"alice", "bob", "carol", "dave", "erin"}
	results := make([]error, len(identities))
	var wg sync.WaitGroup
	for i, identity := range identities {
		wg.Add(1)
		go func(i int, identity string) {
			defer wg.Done()
			results[i] = service.SetInitialAdmin(ctx, identity, testBootstrapToken, testBootstrapToken)
		}(i, identity)
	}
	wg.Wait()

	winners := 0
	for i, err := range results {
		switch {
		case err == nil:
			winners++
			isAdmin, adminErr := service.IsAdmin(ctx, identities[i])
			if adminErr != nil || !isAdmin {
				t.Fatalf("winner %q is not admin: %v", identities[i], adminErr)
			}
		case errors.Is(err, domainerrors.ErrAlreadyBootstrapped):
		default:
			t.Fatalf("unexpected bootstrap error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one successful bootstrap, got %d", winners)
	}
}

func TestAssignRoleRequiresAdmin(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(store)
	ctx := context.Background()

	err := service.AssignRole(ctx, "guest-1", "target", entities.RoleUser)
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for guest, got %v", err)
	}

	if err := service.SetInitialAdmin(ctx, "admin-1", testBootstrapToken, testBootstrapToken); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := service.AssignRole(ctx, "admin-1", "target", entities.RoleUser); err != nil {
		t.Fatalf("admin assign failed: %v", err)
	}

	role, err := service.RoleOf(ctx, "target")
	if err != nil {
		t.Fatalf("role lookup failed: %v", err)
	}
	if role != entities.RoleUser {
		t.Fatalf("expected user, got %q", role)
	}
}

func TestAssignRoleValidatesInput(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(store)
	ctx := context.Background()

	if err := service.SetInitialAdmin(ctx, "admin-1", testBootstrapToken, testBootstrapToken); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	if err := service.AssignRole(ctx, "admin-1", "", entities.RoleUser); !errors.Is(err, domainerrors.ErrIdentityRequired) {
		t.Fatalf("expected identity required, got %v", err)
	}
	if err := service.AssignRole(ctx, "admin-1", "target", entities.Role("superuser")); !errors.Is(err, domainerrors.ErrInvalidRole) {
		t.Fatalf("expected invalid role, got %v", err)
	}
}

func TestAssignRoleAllowsAdminSelfDemotion(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(store)
	ctx := context.Background()

	if err := service.SetInitialAdmin(ctx, "admin-1", testBootstrapToken, testBootstrapToken); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	// The last admin may demote itself; there is no guard and the
	// bootstrap cannot be replayed afterwards.
	if err := service.AssignRole(ctx, "admin-1", "admin-1", entities.RoleGuest); err != nil {
		t.Fatalf("self demotion failed: %v", err)
	}
	isAdmin, err := service.IsAdmin(ctx, "admin-1")
	if err != nil {
		t.Fatalf("admin check failed: %v", err)
	}
	if isAdmin {
		t.Fatalf("demoted identity still admin")
	}
	err = service.SetInitialAdmin(ctx, "admin-1", testBootstrapToken, testBootstrapToken)
	if !errors.Is(err, domainerrors.ErrAlreadyBootstrapped) {
		t.Fatalf("expected bootstrap to stay consumed, got %v", err)
	}
}

func TestAuthorizeGatesByPolicy(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(store)
	ctx := context.Background()

	if err := service.Authorize(ctx, "", domainservices.OpShipmentRead); err != nil {
		t.Fatalf("guest must read shipments: %v", err)
	}
	if err := service.Authorize(ctx, "", domainservices.OpShipmentCreate); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for guest create, got %v", err)
	}
	if err := service.Authorize(ctx, "someone", "not.a.known.operation"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("unknown operations must be denied, got %v", err)
	}

	if err := service.SetInitialAdmin(ctx, "admin-1", testBootstrapToken, testBootstrapToken); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := service.Authorize(ctx, "admin-1", domainservices.OpShipmentCreate); err != nil {
		t.Fatalf("admin create denied: %v", err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(store)
	ctx := context.Background()

	_, err := service.GetOwnProfile(ctx, "alice")
	if !errors.Is(err, domainerrors.ErrProfileNotFound) {
		t.Fatalf("expected profile not found, got %v", err)
	}

	profile := entities.Profile{Name: "Alice", Email: "alice@example.com", Phone: "555-0100"}
	if err := service.SaveOwnProfile(ctx, "alice", profile); err != nil {
		t.Fatalf("save profile failed: %v", err)
	}

	stored, err := service.GetOwnProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("get own profile failed: %v", err)
	}
	if stored != profile {
		t.Fatalf("profile fields changed in storage: %+v", stored)
	}
}

func TestProfileOperationsRequireIdentity(t *testing.T) {
	service := newTestService(memory.NewStore())
	ctx := context.Background()

	if _, err := service.GetOwnProfile(ctx, ""); !errors.Is(err, domainerrors.ErrIdentityRequired) {
		t.Fatalf("expected identity required on read, got %v", err)
	}
	if err := service.SaveOwnProfile(ctx, "", entities.Profile{Name: "X"}); !errors.Is(err, domainerrors.ErrIdentityRequired) {
		t.Fatalf("expected identity required on save, got %v", err)
	}
	if err := service.SaveOwnProfile(ctx, "alice", entities.Profile{Name: "  "}); !errors.Is(err, domainerrors.ErrInvalidProfile) {
		t.Fatalf("expected invalid profile without a name, got %v", err)
	}
}

func TestGetProfileByIdentityIsOpenToViewers(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(store)
	ctx := context.Background()

	if err := service.SaveOwnProfile(ctx, "bob", entities.Profile{Name: "Bob"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	profile, err := service.GetProfile(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("viewer read failed: %v", err)
	}
	if profile.Name != "Bob" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if _, err := service.GetProfile(ctx, "alice", ""); !errors.Is(err, domainerrors.ErrIdentityRequired) {
		t.Fatalf("expected identity required for empty target, got %v", err)
	}
	if _, err := service.GetProfile(ctx, "alice", "nobody"); !errors.Is(err, domainerrors.ErrProfileNotFound) {
		t.Fatalf("expected profile not found, got %v", err)
	}
}
