// Package redis stores session values in Redis. Every access refreshes the
// key's TTL so idle sessions expire on their own.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Store implements session.Store on top of a Redis client.
type Store struct {
	client *goredis.Client
	ttl    time.Duration
}

// New wraps client. A zero ttl keeps keys forever.
func New(client *goredis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Connect builds a client from a redis:// URL when url is set, otherwise
// from addr, and pings it.
func Connect(ctx context.Context, url, addr string) (*goredis.Client, error) {
	opt := &goredis.Options{Addr: addr}
	if url != "" {
		parsed, err := goredis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opt = parsed
	}
	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	var err error
	if s.ttl > 0 {
		v, err = s.client.GetEx(ctx, key, s.ttl).Result()
	} else {
		v, err = s.client.Get(ctx, key).Result()
	}
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
