package users

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nlamduy/libris/internal/platform/constants"
	"github.com/nlamduy/libris/internal/platform/sec"
)

// RedisSessionStore implements SessionStore using a Redis denylist.
//
// Tokens stay valid until their JWT expiry unless they appear here; logout
// writes an entry whose TTL matches the token's remaining lifetime, so the
// denylist cleans itself up.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a new Redis-backed SessionStore.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

/*
Revoke marks a token as invalid for its remaining lifetime.

Parameters:
  - context: context.Context
  - token: string (the raw JWT, stored as a digest)
  - timeToLive: time.Duration (remaining token life)

Returns:
  - error: Storage failures
*/
func (repository *RedisSessionStore) Revoke(context context.Context, token string, timeToLive time.Duration) error {

	// A token already past its expiry needs no denylist entry
	if timeToLive <= 0 {
		return nil
	}

	// The raw JWT never touches Redis; only its digest is stored
	key := constants.RedisPrefixRevokedToken + sec.HashToken(token)

	return repository.client.Set(context, key, 1, timeToLive).Err()
}

/*
IsRevoked reports whether the token appears on the denylist.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - bool: true when the token has been revoked
  - error: Connectivity errors
*/
func (repository *RedisSessionStore) IsRevoked(context context.Context, token string) (bool, error) {
	key := constants.RedisPrefixRevokedToken + sec.HashToken(token)

	if err := repository.client.Get(context, key).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
