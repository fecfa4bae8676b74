package ports

import (
	"context"
	"time"

	"parceltrack/contexts/identity-access/access-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// Repository is the write/read boundary for identity state.
//
// ConsumeBootstrap must be linearizable: it marks the bootstrap flag consumed
// and grants admin to the identity in one atomic step, returning false when a
// previous call already consumed it. GetRole reports found=false for unseen
// identities; the application layer maps that to guest.
type Repository interface {
	GetRole(ctx context.Context, identity string) (entities.Role, bool, error)
	SaveRole(ctx context.Context, identity string, role entities.Role) error
	GetProfile(ctx context.Context, identity string) (entities.Profile, bool, error)
	SaveProfile(ctx context.Context, identity string, profile entities.Profile) error
	BootstrapConsumed(ctx context.Context) (bool, error)
	ConsumeBootstrap(ctx context.Context, identity string, now time.Time) (bool, error)
}

// RoleCache stores identity→role lookups with TTL semantics. Implementations
// are optional; a nil cache disables caching entirely.
type RoleCache interface {
	GetRole(ctx context.Context, identity string) (entities.Role, bool, error)
	SetRole(ctx context.Context, identity string, role entities.Role, ttl time.Duration) error
	InvalidateRole(ctx context.Context, identity string) error
}
