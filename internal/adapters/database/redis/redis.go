package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clubmsg/backend/internal/adapters/database/redis/codes"
	"github.com/clubmsg/backend/internal/adapters/database/redis/presence"
)

// Client bundles the per-concern redis storages. Each concern lives in
// its own logical database.
type Client struct {
	Presence *presence.Storage
	Codes    *codes.Storage
}

type Options struct {
	Host        string
	Port        string
	Password    string
	PresenceTTL time.Duration
}

func New(opts Options) (*Client, error) {
	presenceDB := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := presenceDB.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping presence storage: %w", err)
	}

	codesDB := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       1,
	})
	if err := codesDB.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping codes storage: %w", err)
	}

	return &Client{
		Presence: presence.NewStorage(presenceDB, opts.PresenceTTL),
		Codes:    codes.NewStorage(codesDB),
	}, nil
}
