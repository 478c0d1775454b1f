package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

const tokenKeyPrefix = "auth:token:"

type RedisTokenStore struct {
	client rueidis.Client
	ttl    time.Duration
}

func NewRedisTokenStore(client rueidis.Client, ttl time.Duration) *RedisTokenStore {
	return &RedisTokenStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisTokenStore) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()

	cmd := s.client.B().Set().
		Key(tokenKeyPrefix + token).
		Value(userID).
		Ex(s.ttl).
		Build()

	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return "", err
	}

	return token, nil
}

func (s *RedisTokenStore) Resolve(ctx context.Context, token string) (string, error) {
	cmd := s.client.B().Get().Key(tokenKeyPrefix + token).Build()
	result := s.client.Do(ctx, cmd)

	userID, err := result.ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrTokenNotFound
		}
		return "", err
	}

	return userID, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, token string) error {
	cmd := s.client.B().Del().Key(tokenKeyPrefix + token).Build()
	return s.client.Do(ctx, cmd).Error()
}
