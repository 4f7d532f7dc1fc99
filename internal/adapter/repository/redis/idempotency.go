// Package redis implements usecase stores backed by Redis.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// pendingPlaceholder marks a key whose response is still being computed.
const pendingPlaceholder = "pending"

// IdempotencyStore implements usecase.IdempotencyStore. Replayed mutation
// requests carrying the same Idempotency-Key header get the stored
// response instead of a second execution.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "fxledger:idempotency:",
	}
}

// CheckAndSet claims the key if it is unseen, or returns the previously
// stored response. A nil response claims the key with a placeholder; the
// caller stores the real response via Update once it is known.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	value := any(response)
	if response == nil {
		value = pendingPlaceholder
	}

	claimed, err := s.client.SetNX(ctx, fullKey, value, ttl).Result()
	if err != nil {
		return false, nil, err
	}

	if claimed {
		return false, nil, nil
	}

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		// The key expired between SetNX and Get; treat the request as seen
		// with no stored response.
		if errors.Is(err, redis.Nil) {
			return true, nil, nil
		}

		return false, nil, err
	}

	return true, existing, nil
}

// Update replaces the placeholder (or a previous response) with the final
// response body.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}
