package codes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
)

// Storage keeps email-confirmation codes, keyed by the code itself and
// holding the user id they were mailed to.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Set(ctx context.Context, code string, userID string, expiration time.Duration) error {
	return s.redis.Set(ctx, key(code), userID, expiration).Err()
}

func (s *Storage) Get(ctx context.Context, code string) (string, error) {
	userID, err := s.redis.Get(ctx, key(code)).Result()
	if errors.Is(err, redis.Nil) {
		return "", errorz.ErrNotFound
	}
	return userID, err
}

func (s *Storage) Clear(ctx context.Context, code string) error {
	return s.redis.Del(ctx, key(code)).Err()
}

func key(code string) string {
	return fmt.Sprintf("confirm:%s", code)
}
