// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/maisonhq/maison/internal/platform/apperr"
	"github.com/maisonhq/maison/internal/platform/constants"
	"github.com/maisonhq/maison/pkg/rbac"
)

// RedisRoleClaimCache implements RoleClaimCache using Redis.
type RedisRoleClaimCache struct {
	client *redis.Client
}

// NewRoleClaimCache creates a new Redis-backed RoleClaimCache.
func NewRoleClaimCache(client *redis.Client) *RedisRoleClaimCache {
	return &RedisRoleClaimCache{client: client}
}

/*
GetRoleClaim retrieves the cached role for a user ID.

Description: Returns apperr.NotFound when the entry is absent or expired.
An unparseable cached value is treated as a miss, never as a grant.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - rbac.Role: Cached role
  - error: apperr.NotFound or connectivity errors
*/
func (cache *RedisRoleClaimCache) GetRoleClaim(context context.Context, userID string) (rbac.Role, error) {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixRoleClaim, userID)

	// Get the cached role from Redis
	value, err := cache.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return rbac.RoleUnknown, apperr.NotFound("Role claim")
		}
		return rbac.RoleUnknown, fmt.Errorf("redis_role_claim_get_failed: %w", err)
	}

	// Reject corrupted entries instead of passing them to policy checks
	role := rbac.Role(value)
	if !role.IsValid() {
		return rbac.RoleUnknown, apperr.NotFound("Role claim")
	}

	return role, nil
}

/*
SetRoleClaim stores the role for a user ID with a TTL.

Parameters:
  - context: context.Context
  - userID: string
  - role: rbac.Role
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (cache *RedisRoleClaimCache) SetRoleClaim(context context.Context, userID string, role rbac.Role, ttl time.Duration) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixRoleClaim, userID)

	// Set the role with TTL
	if err := cache.client.Set(context, key, string(role), ttl).Err(); err != nil {
		return fmt.Errorf("redis_role_claim_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
InvalidateRoleClaim drops the cached role for a user ID.

Description: Called after a role change or deletion so the next request
re-reads the directory instead of waiting out the TTL.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Deletion failures
*/
func (cache *RedisRoleClaimCache) InvalidateRoleClaim(context context.Context, userID string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixRoleClaim, userID)

	// Delete the cached role from Redis
	if err := cache.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_role_claim_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
