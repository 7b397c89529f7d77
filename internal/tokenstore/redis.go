// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package tokenstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/okunevich/petsearch/internal/platform/constants"
)

// RedisStore persists the token pair in Redis.
//
// # Use Case
//
// Headless deployments (monitoring bots, import workers) run several
// processes that must share one backend session. Redis gives them a common
// durable store with the same two-key contract as the file store.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed [*RedisStore].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

/*
Load retrieves the token pair.

Description: Absent keys yield the zero Tokens value, matching the Store
contract.

Parameters:
  - context: context.Context

Returns:
  - Tokens: The stored pair (possibly zero)
  - error: Connectivity errors
*/
func (store *RedisStore) Load(context context.Context) (Tokens, error) {

	// Fetch both keys in one round trip
	values, err := store.client.MGet(context,
		constants.RedisPrefixSession+constants.StorageKeyAccess,
		constants.RedisPrefixSession+constants.StorageKeyRefresh,
	).Result()
	if err != nil {
		return Tokens{}, fmt.Errorf("redis_tokens_load_failed: %w", err)
	}

	var tokens Tokens
	if access, ok := values[0].(string); ok {
		tokens.Access = access
	}
	if refresh, ok := values[1].(string); ok {
		tokens.Refresh = refresh
	}

	return tokens, nil
}

/*
Save stores both tokens atomically.

Parameters:
  - context: context.Context
  - tokens: The pair to persist

Returns:
  - error: Storage failures
*/
func (store *RedisStore) Save(context context.Context, tokens Tokens) error {

	// MSet keeps the pair consistent: never one token without the other
	if err := store.client.MSet(context,
		constants.RedisPrefixSession+constants.StorageKeyAccess, tokens.Access,
		constants.RedisPrefixSession+constants.StorageKeyRefresh, tokens.Refresh,
	).Err(); err != nil {
		return fmt.Errorf("redis_tokens_save_failed: %w", err)
	}

	return nil
}

/*
Clear deletes both tokens. Missing keys are not an error.

Parameters:
  - context: context.Context

Returns:
  - error: Deletion failures
*/
func (store *RedisStore) Clear(context context.Context) error {

	if err := store.client.Del(context,
		constants.RedisPrefixSession+constants.StorageKeyAccess,
		constants.RedisPrefixSession+constants.StorageKeyRefresh,
	).Err(); err != nil {
		return fmt.Errorf("redis_tokens_clear_failed: %w", err)
	}

	return nil
}
