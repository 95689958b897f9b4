package chat

import (
	"context"
	"encoding/json"
	"time"

	"careflow/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "chat:session:"

// SessionStore persists per-session conversation state.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.SessionState, error)
	Set(ctx context.Context, sessionID string, state *models.SessionState) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps session state in Redis. A zero ttl means sessions
// never expire on their own and live until explicitly cleared.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	key := sessionPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.SessionState{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, err
	}
	var state models.SessionState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, sessionID string, state *models.SessionState) error {
	key := sessionPrefix + sessionID
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	key := sessionPrefix + sessionID
	return s.client.Del(ctx, key).Err()
}
