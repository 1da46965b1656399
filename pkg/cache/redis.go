package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type Cache struct {
	client *redis.Client
	prefix string
}

type settings struct {
	addr     string
	password string
	db       int
	prefix   string
}

type Option func(*settings)

func WithAddress(addr string) Option { return func(s *settings) { s.addr = addr } }

func WithPassword(pass string) Option { return func(s *settings) { s.password = pass } }

func WithDB(db int) Option { return func(s *settings) { s.db = db } }

// WithPrefix namespaces every key, e.g. "shotstats:".
func WithPrefix(prefix string) Option { return func(s *settings) { s.prefix = prefix } }

// New connects to Redis and fails fast when the server does not answer PING.
func New(ctx context.Context, opts ...Option) (*Cache, error) {
	s := settings{addr: "localhost:6379", prefix: "shotstats:"}
	for _, opt := range opts {
		opt(&s)
	}

	client := redis.NewClient(&redis.Options{Addr: s.addr, Password: s.password, DB: s.db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", s.addr, err)
	}
	return &Cache{client: client, prefix: s.prefix}, nil
}

func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(val, dest)
}

func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, data, expiration).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// Nop satisfies the same contract as Cache but never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string, any) error                 { return ErrMiss }
func (Nop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Nop) Close() error                                           { return nil }

type Store interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type FetchFunc[T any] func(ctx context.Context) (T, error)

// FindAndCache wraps fn with a read-through lookup. Cache write failures are
// logged and do not fail the call.
func FindAndCache[T any](store Store, key string, ttl time.Duration, logger *zap.Logger, fn FetchFunc[T]) FetchFunc[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context) (T, error) {
		var cached T
		err := store.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrMiss) {
			logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}

		result, err := fn(ctx)
		if err != nil {
			var zero T
			return zero, err
		}

		if err := store.Set(ctx, key, result, ttl); err != nil {
			logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
		return result, nil
	}
}
