package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appidentity "github.com/fabos/server/internal/application/identity"
	"github.com/fabos/server/internal/domain/identity"
	"github.com/redis/go-redis/v9"
)

// RedisIdempotencyStore implements the signup idempotency store using Redis.
// Suitable for distributed deployments where multiple instances need to
// share idempotency state.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisIdempotencyStore creates a store backed by the given Redis client
func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: "fabos:signup:idempotency:",
	}
}

// Get returns the stored creation result for the key, or nil when absent
func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*identity.TenantCreationResult, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read idempotency key: %w", err)
	}

	var result identity.TenantCreationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode idempotency entry: %w", err)
	}
	return &result, nil
}

// Set stores the creation result under the key for the given TTL
func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, result identity.TenantCreationResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode idempotency entry: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}
	return nil
}

// Ensure RedisIdempotencyStore implements the application interface
var _ appidentity.IdempotencyStore = (*RedisIdempotencyStore)(nil)
