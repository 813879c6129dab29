// Package cache connects the console to the Redis instance holding cookie sessions.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options select the Redis database used for sessions.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// New creates a Redis client and verifies it answers within five seconds.
// The client is closed again when the first ping fails.
func New(ctx context.Context, opts Options) (*redis.Client, error) {
	if opts.Addr == "" {
		return nil, errors.New("platform/cache: address required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("platform/cache: ping %s: %w", opts.Addr, err)
	}
	return client, nil
}

// Probe exposes a client as a health check.
type Probe struct {
	Client *redis.Client
}

// Ping reports whether Redis answers.
func (p Probe) Ping(ctx context.Context) error {
	if p.Client == nil {
		return errors.New("platform/cache: no client")
	}
	return p.Client.Ping(ctx).Err()
}
