package application

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"parceltrack/contexts/identity-access/access-service/domain/entities"
	domainerrors "parceltrack/contexts/identity-access/access-service/domain/errors"
	domainservices "parceltrack/contexts/identity-access/access-service/domain/services"
	"parceltrack/contexts/identity-access/access-service/ports"
)

const moduleName = "identity-access/access-service"

// Service owns role resolution, the access-control gate, profile storage,
// and the one-time initial-admin bootstrap.
type Service struct {
	Repo         ports.Repository
	Cache        ports.RoleCache
	Clock        ports.Clock
	RoleCacheTTL time.Duration
	Logger       *slog.Logger
}

// RoleOf resolves an identity to its current role. Anonymous and unseen
// identities are guests; this never fails a request on a cache error.
func (s Service) RoleOf(ctx context.Context, identity string) (entities.Role, error) {
	logger := ResolveLogger(s.Logger)
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return entities.RoleGuest, nil
	}

	if s.Cache != nil {
		role, found, err := s.Cache.GetRole(ctx, identity)
		if err != nil {
			logger.Warn("role cache read failed",
				"event", "access_role_cache_read_failed",
				"module", moduleName,
				"layer", "application",
				"error", err.Error(),
			)
		} else if found {
			return role, nil
		}
	}

	role, found, err := s.Repo.GetRole(ctx, identity)
	if err != nil {
		return entities.RoleGuest, err
	}
	if !found {
		role = entities.RoleGuest
	}

	if s.Cache != nil {
		if err := s.Cache.SetRole(ctx, identity, role, s.cacheTTL()); err != nil {
			logger.Warn("role cache write failed",
				"event", "access_role_cache_write_failed",
				"module", moduleName,
				"layer", "application",
				"error", err.Error(),
			)
		}
	}
	return role, nil
}

func (s Service) IsAdmin(ctx context.Context, identity string) (bool, error) {
	role, err := s.RoleOf(ctx, identity)
	if err != nil {
		return false, err
	}
	return role == entities.RoleAdmin, nil
}

// Authorize gates an operation for an identity against the policy table.
// Implements the tracking-service Authorizer port.
func (s Service) Authorize(ctx context.Context, identity string, operation string) error {
	role, err := s.RoleOf(ctx, identity)
	if err != nil {
		return err
	}
	if !domainservices.Authorize(role, operation) {
		return domainerrors.ErrForbidden
	}
	return nil
}

// AssignRole lets an admin set any identity's role, including demoting the
// last remaining admin. There is deliberately no last-admin guard.
func (s Service) AssignRole(ctx context.Context, actingIdentity string, targetIdentity string, role entities.Role) error {
	logger := ResolveLogger(s.Logger)
	if err := s.Authorize(ctx, actingIdentity, domainservices.OpRoleAssign); err != nil {
		return err
	}

	targetIdentity = strings.TrimSpace(targetIdentity)
	if targetIdentity == "" {
		return domainerrors.ErrIdentityRequired
	}
	if !role.Valid() {
		return domainerrors.ErrInvalidRole
	}

	if err := s.Repo.SaveRole(ctx, targetIdentity, role); err != nil {
		return err
	}
	s.invalidateRole(ctx, targetIdentity)

	logger.Info("role assigned",
		"event", "access_role_assigned",
		"module", moduleName,
		"layer", "application",
		"acting_identity", actingIdentity,
		"target_identity", targetIdentity,
		"role", string(role),
	)
	return nil
}

// SetInitialAdmin grants admin to the caller exactly once per deployment.
// The token comparison is over fixed-length digests so neither token length
// nor a matching prefix changes the timing. Once consumed, every later call
// is rejected before the token is even considered.
func (s Service) SetInitialAdmin(ctx context.Context, identity string, providedToken string, expectedToken string) error {
	logger := ResolveLogger(s.Logger)
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return domainerrors.ErrIdentityRequired
	}

	consumed, err := s.Repo.BootstrapConsumed(ctx)
	if err != nil {
		return err
	}
	if consumed {
		return domainerrors.ErrAlreadyBootstrapped
	}

	if expectedToken == "" || !tokensMatch(providedToken, expectedToken) {
		logger.Warn("bootstrap token rejected",
			"event", "access_bootstrap_token_rejected",
			"module", moduleName,
			"layer", "application",
			"identity", identity,
		)
		return domainerrors.ErrInvalidToken
	}

	consumedNow, err := s.Repo.ConsumeBootstrap(ctx, identity, s.now())
	if err != nil {
		return err
	}
	if !consumedNow {
		// Lost the race to a concurrent valid-token call.
		return domainerrors.ErrAlreadyBootstrapped
	}
	s.invalidateRole(ctx, identity)

	logger.Info("initial admin granted",
		"event", "access_initial_admin_granted",
		"module", moduleName,
		"layer", "application",
		"identity", identity,
	)
	return nil
}

// GetProfile returns any identity's profile; readable at guest level.
func (s Service) GetProfile(ctx context.Context, callerIdentity string, targetIdentity string) (entities.Profile, error) {
	if err := s.Authorize(ctx, callerIdentity, domainservices.OpProfileReadAny); err != nil {
		return entities.Profile{}, err
	}
	targetIdentity = strings.TrimSpace(targetIdentity)
	if targetIdentity == "" {
		return entities.Profile{}, domainerrors.ErrIdentityRequired
	}

	profile, found, err := s.Repo.GetProfile(ctx, targetIdentity)
	if err != nil {
		return entities.Profile{}, err
	}
	if !found {
		return entities.Profile{}, domainerrors.ErrProfileNotFound
	}
	return profile, nil
}

// GetOwnProfile requires a resolved, non-anonymous caller.
func (s Service) GetOwnProfile(ctx context.Context, identity string) (entities.Profile, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return entities.Profile{}, domainerrors.ErrIdentityRequired
	}
	if err := s.Authorize(ctx, identity, domainservices.OpProfileReadOwn); err != nil {
		return entities.Profile{}, err
	}

	profile, found, err := s.Repo.GetProfile(ctx, identity)
	if err != nil {
		return entities.Profile{}, err
	}
	if !found {
		return entities.Profile{}, domainerrors.ErrProfileNotFound
	}
	return profile, nil
}

// SaveOwnProfile upserts the caller's own profile. Name is required.
func (s Service) SaveOwnProfile(ctx context.Context, identity string, profile entities.Profile) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return domainerrors.ErrIdentityRequired
	}
	if err := s.Authorize(ctx, identity, domainservices.OpProfileSaveOwn); err != nil {
		return err
	}

	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return domainerrors.ErrInvalidProfile
	}
	return s.Repo.SaveProfile(ctx, identity, profile)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) cacheTTL() time.Duration {
	if s.RoleCacheTTL <= 0 {
		return 5 * time.Minute
	}
	return s.RoleCacheTTL
}

func (s Service) invalidateRole(ctx context.Context, identity string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.InvalidateRole(ctx, identity); err != nil {
		ResolveLogger(s.Logger).Warn("role cache invalidate failed",
			"event", "access_role_cache_invalidate_failed",
			"module", moduleName,
			"layer", "application",
			"error", err.Error(),
		)
	}
}

func tokensMatch(provided string, expected string) bool {
	providedDigest := sha256.Sum256([]byte(provided))
	expectedDigest := sha256.Sum256([]byte(expected))
	return subtle.ConstantTimeCompare(providedDigest[:], expectedDigest[:]) == 1
}
