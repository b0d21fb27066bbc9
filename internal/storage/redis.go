package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pfrederiksen/golf-league/internal/league"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultRedisKey holds the document when no key is configured
	DefaultRedisKey = "golf-league:league"
	redisTimeout    = 5 * time.Second
)

// stringStore is the part of *redis.Client the store needs
type stringStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStorage keeps the document under a single Redis key
type RedisStorage struct {
	client stringStore
	key    string
}

// NewRedisStorage connects to the Redis server at url (redis://host:port/db)
func NewRedisStorage(url, key string) (*RedisStorage, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing Redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}
	return newRedisStorage(client, key), nil
}

func newRedisStorage(client stringStore, key string) *RedisStorage {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStorage{client: client, key: key}
}

// Load reads the document. A missing key is an empty league.
func (s *RedisStorage) Load() (*league.League, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return league.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s from Redis: %w", s.key, err)
	}
	return Decode(data)
}

// Save writes the document with no expiry
func (s *RedisStorage) Save(l *league.League) error {
	l.Touch()
	data, err := Encode(l)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("writing %s to Redis: %w", s.key, err)
	}
	return nil
}
