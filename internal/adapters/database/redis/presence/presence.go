package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// Storage tracks which profiles are currently online. A presence key
// expires on its own, so a crashed client eventually shows offline
// without any cleanup pass.
type Storage struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStorage(client *redis.Client, ttl time.Duration) *Storage {
	if ttl == 0 {
		ttl = defaultTTL
	}
	return &Storage{
		redis: client,
		ttl:   ttl,
	}
}

func (s *Storage) SetOnline(ctx context.Context, profileID string) error {
	return s.redis.Set(ctx, key(profileID), "1", s.ttl).Err()
}

func (s *Storage) SetOffline(ctx context.Context, profileID string) error {
	return s.redis.Del(ctx, key(profileID)).Err()
}

func (s *Storage) IsOnline(ctx context.Context, profileID string) (bool, error) {
	n, err := s.redis.Exists(ctx, key(profileID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func key(profileID string) string {
	return fmt.Sprintf("presence:%s", profileID)
}
