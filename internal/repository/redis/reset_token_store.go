// Package redis holds the Redis-backed stores. Reset tokens live here
// rather than in MongoDB so that expiry is enforced by the store itself.
package redis

import (
	"context"
	"errors"
	"time"

	"lfmachado/gym-app/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const resetKeyPrefix = "reset:"

// resetTokenStore implements repository.ResetTokenRepository on Redis.
// All calls go through a circuit breaker so a dead Redis fails fast
// instead of piling up timeouts.
type resetTokenStore struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker
}

// NewResetTokenStore creates a reset token store over the given client.
func NewResetTokenStore(client *redis.Client, cb *gobreaker.CircuitBreaker) repository.ResetTokenRepository {
	return &resetTokenStore{client: client, cb: cb}
}

// Save stores the token with a TTL. The value is the hex user ID.
func (s *resetTokenStore) Save(ctx context.Context, token string, userID primitive.ObjectID, ttl time.Duration) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, resetKeyPrefix+token, userID.Hex(), ttl).Err()
	})
	return err
}

// Consume returns the user the token belongs to and deletes it atomically.
// Expired or unknown tokens yield repository.ErrTokenExpired.
func (s *resetTokenStore) Consume(ctx context.Context, token string) (primitive.ObjectID, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		return s.client.GetDel(ctx, resetKeyPrefix+token).Result()
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return primitive.NilObjectID, repository.ErrTokenExpired
		}
		return primitive.NilObjectID, err
	}

	hex, ok := result.(string)
	if !ok || hex == "" {
		return primitive.NilObjectID, repository.ErrTokenExpired
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, repository.ErrTokenExpired
	}
	return id, nil
}
