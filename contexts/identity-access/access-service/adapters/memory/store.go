package memory

import (
	"context"
	"sync"
	"time"

	"parceltrack/contexts/identity-access/access-service/domain/entities"
)

// Store is an in-memory adapter implementing the identity repository port.
// Role writes and the bootstrap consume share one mutex, which makes the
// consume a linearization point: exactly one caller ever observes the flip.
type Store struct {
	mu        sync.RWMutex
	roles     map[string]entities.Role
	profiles  map[string]entities.Profile
	bootstrap entities.BootstrapState
}

func NewStore() *Store {
	return &Store{
		roles:    make(map[string]entities.Role),
		profiles: make(map[string]entities.Profile),
	}
}

func (s *Store) GetRole(_ context.Context, identity string) (entities.Role, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, found := s.roles[identity]
	return role, found, nil
}

func (s *Store) SaveRole(_ context.Context, identity string, role entities.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roles[identity] = role
	return nil
}

func (s *Store) GetProfile(_ context.Context, identity string) (entities.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, found := s.profiles[identity]
	return profile, found, nil
}

func (s *Store) SaveProfile(_ context.Context, identity string, profile entities.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[identity] = profile
	return nil
}

func (s *Store) BootstrapConsumed(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.bootstrap.Consumed, nil
}

// ConsumeBootstrap flips the flag and grants admin in one critical section.
func (s *Store) ConsumeBootstrap(_ context.Context, identity string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bootstrap.Consumed {
		return false, nil
	}
	s.bootstrap = entities.BootstrapState{
		Consumed:   true,
		GrantedTo:  identity,
		ConsumedAt: now,
	}
	s.roles[identity] = entities.RoleAdmin
	return true, nil
}

// BootstrapState exposes the current flag for tests.
func (s *Store) BootstrapState() entities.BootstrapState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.bootstrap
}

// Now implements ports.Clock.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
