package redisadapter

import (
	"context"
	"errors"
	"time"

	"parceltrack/contexts/identity-access/access-service/domain/entities"

	"github.com/redis/go-redis/v9"
)

const roleKeyPrefix = "access:role:"

// RoleCache implements ports.RoleCache on redis. Entries expire on their own;
// role mutations invalidate eagerly so promotions take effect immediately.
type RoleCache struct {
	client *redis.Client
}

func NewRoleCache(client *redis.Client) *RoleCache {
	return &RoleCache{client: client}
}

func (c *RoleCache) GetRole(ctx context.Context, identity string) (entities.Role, bool, error) {
	value, err := c.client.Get(ctx, roleKeyPrefix+identity).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entities.RoleGuest, false, nil
		}
		return entities.RoleGuest, false, err
	}

	role := entities.Role(value)
	if !role.Valid() {
		// Stale or foreign value; treat as a miss so the repo wins.
		return entities.RoleGuest, false, nil
	}
	return role, true, nil
}

func (c *RoleCache) SetRole(ctx context.Context, identity string, role entities.Role, ttl time.Duration) error {
	return c.client.Set(ctx, roleKeyPrefix+identity, string(role), ttl).Err()
}

func (c *RoleCache) InvalidateRole(ctx context.Context, identity string) error {
	return c.client.Del(ctx, roleKeyPrefix+identity).Err()
}
