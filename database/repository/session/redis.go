package sessionRepo

import (
	"context"
	"encoding/json"
	"time"

	"reservo/models"

	"github.com/go-redis/redis/v8"
)

const chatSessionPrefix = "chat:session:"

type RedisSessionRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepo stores sessions as JSON; a zero ttl keeps them until deleted.
func NewRedisSessionRepo(client *redis.Client, ttl time.Duration) *RedisSessionRepo {
	return &RedisSessionRepo{client: client, ttl: ttl}
}

func (r *RedisSessionRepo) Get(ctx context.Context, clientID string) (*models.ChatSession, error) {
	data, err := r.client.Get(ctx, chatSessionPrefix+clientID).Bytes()
	if err == redis.Nil {
		return models.NewChatSession(clientID), nil
	}
	if err != nil {
		return nil, err
	}
	var s models.ChatSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.State == "" {
		s.State = models.StateInitial
	}
	s.ClientID = clientID
	return &s, nil
}

func (r *RedisSessionRepo) Put(ctx context.Context, session *models.ChatSession) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, chatSessionPrefix+session.ClientID, b, r.ttl).Err()
}

func (r *RedisSessionRepo) Delete(ctx context.Context, clientID string) error {
	return r.client.Del(ctx, chatSessionPrefix+clientID).Err()
}
