package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/token"
)

// RedisTokenStore implements token.Store on Redis. One key per user holds
// the currently live token, so issuing a new token or revoking invalidates
// the previous one immediately.
type RedisTokenStore struct {
	client *redis.Client
	logger coreport.Logger
}

// NewRedisTokenStore creates a Redis-backed token store
func NewRedisTokenStore(client *redis.Client, logger coreport.Logger) token.Store {
	return &RedisTokenStore{client: client, logger: logger}
}

func tokenKey(userID uint64) string {
	return fmt.Sprintf("user:%d:token", userID)
}

// Save stores the live token for a user with the given TTL
func (s *RedisTokenStore) Save(ctx context.Context, userID uint64, tokenString string, ttl time.Duration) error {
	if err := s.client.Set(ctx, tokenKey(userID), tokenString, ttl).Err(); err != nil {
		s.logger.Error("Failed to store token", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return err
	}
	return nil
}

// IsLive reports whether the presented token is the user's live token
func (s *RedisTokenStore) IsLive(ctx context.Context, userID uint64, tokenString string) (bool, error) {
	stored, err := s.client.Get(ctx, tokenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == tokenString, nil
}

// Revoke removes the user's live token
func (s *RedisTokenStore) Revoke(ctx context.Context, userID uint64) error {
	return s.client.Del(ctx, tokenKey(userID)).Err()
}
