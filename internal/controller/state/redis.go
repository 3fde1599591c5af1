package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/redis/go-redis/v9"
)

// RedisStore хранит сессии в Redis как JSON под ключом session:<chatID>
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore ttl == 0 означает хранение без срока
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("session:%d", chatID)
}

// Get сессию по chat_id
func (s *RedisStore) Get(ctx context.Context, chatID int64) (*model.Session, error) {
	val, err := s.client.Get(ctx, sessionKey(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(val, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Save сессию и продлевает ttl
func (s *RedisStore) Save(ctx context.Context, session *model.Session) error {
	c := session.Clone()
	c.UpdatedAt = time.Now()

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ChatID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete удаляет сессию
func (s *RedisStore) Delete(ctx context.Context, chatID int64) error {
	if err := s.client.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Ping проверяет подключение
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
