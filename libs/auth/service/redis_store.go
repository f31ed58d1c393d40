package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:"

// redisSessionStore implements SessionStore on top of Redis keys with expiry
type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a new Redis backed session store
func NewRedisSessionStore(client *redis.Client) *redisSessionStore {
	return &redisSessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Save stores the user ID under the session key with the given TTL
func (s *redisSessionStore) Save(ctx context.Context, sessionID string, userID int, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(sessionID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get returns the user ID stored for the session
func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (int, error) {
	userID, err := s.client.Get(ctx, sessionKey(sessionID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get session: %w", err)
	}
	return userID, nil
}

// Delete removes the session key
func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
