package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/pickhacks/portal/internal/adapters/database/redis/drafts"
	"github.com/pickhacks/portal/internal/adapters/database/redis/sessions"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	Sessions *sessions.Storage
	Drafts   *drafts.Storage

	redis *redis.Client
}

type Options struct {
	Host     string
	Port     int
	Password string
	DraftTTL time.Duration
}

func New(opts Options) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Client{
		Sessions: sessions.NewStorage(client),
		Drafts:   drafts.NewStorage(client, opts.DraftTTL),
		redis:    client,
	}, nil
}

func (c *Client) Close() error {
	return c.redis.Close()
}
