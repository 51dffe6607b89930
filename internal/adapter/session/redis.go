package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis so multiple instances can share them.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(url string, ttl time.Duration) (port.SessionStore, error) {
	opts, err := redis.ParseURL(url)

	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (rs *RedisStore) Create(ctx context.Context) (domain.Session, error) {
	id, err := newToken()

	if err != nil {
		return domain.Session{}, err
	}

	csrfToken, err := newToken()

	if err != nil {
		return domain.Session{}, err
	}

	sess := domain.Session{
		ID:        id,
		CSRFToken: csrfToken,
		CreatedAt: time.Now(),
	}

	if err := rs.Save(ctx, sess); err != nil {
		return domain.Session{}, err
	}

	return sess, nil
}

func (rs *RedisStore) Get(ctx context.Context, id string) (domain.Session, error) {
	payload, err := rs.client.Get(ctx, redisKeyPrefix+id).Bytes()

	if errors.Is(err, redis.Nil) {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	var sess domain.Session

	if err := json.Unmarshal(payload, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("failed to decode session: %w", err)
	}

	return sess, nil
}

func (rs *RedisStore) Save(ctx context.Context, sess domain.Session) error {
	payload, err := json.Marshal(sess)

	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := rs.client.Set(ctx, redisKeyPrefix+sess.ID, payload, rs.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

func (rs *RedisStore) Delete(ctx context.Context, id string) error {
	if err := rs.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
