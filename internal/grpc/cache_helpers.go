package grpc

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/godilite/shotstats/pkg/cache"
	"github.com/godilite/shotstats/pkg/metrics"
)

type FetchFunc[T any] func(ctx context.Context) (T, error)

const (
	refreshTimeout    = 30 * time.Second
	defaultSetTimeout = 5 * time.Second
	maxJitter         = 15 * time.Second
)

// cachedEntry records when a value was stored so hits can decide whether to
// refresh ahead of expiry.
type cachedEntry[T any] struct {
	Value    T         `json:"value"`
	StoredAt time.Time `json:"stored_at"`
}

// addTTLJitter spreads expirations by up to ±15s.
func addTTLJitter(ttl time.Duration) time.Duration {
	if ttl <= 2*maxJitter {
		return ttl
	}
	return ttl + time.Duration(rand.Int64N(int64(2*maxJitter))) - maxJitter
}

type readThrough struct {
	cache   Cacher
	sf      *singleflight.Group
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
	name    string
}

func storeEntry[T any](rt readThrough, key string, value T) {
	setCtx, cancel := context.WithTimeout(context.Background(), defaultSetTimeout)
	defer cancel()

	ttl := addTTLJitter(rt.ttl)
	entry := cachedEntry[T]{Value: value, StoredAt: time.Now().UTC()}
	if err := rt.cache.Set(setCtx, key, entry, ttl); err != nil {
		rt.logger.Warn("failed to set cache", zap.String("key", key), zap.Error(err))
		return
	}
	rt.logger.Debug("cache populated", zap.String("key", key), zap.Duration("ttl", ttl))
}

// refreshAhead recomputes an entry past half its TTL. Concurrent hits share a
// single refresh.
func refreshAhead[T any](rt readThrough, key string, fn FetchFunc[T]) {
	go func() {
		_, _, _ = rt.sf.Do(key+":refresh", func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()

			value, err := fn(ctx)
			if err != nil {
				rt.logger.Warn("background refresh failed", zap.String("key", key), zap.Error(err))
				return nil, err
			}
			storeEntry(rt, key, value)
			return nil, nil
		})
	}()
}

// findAndCache serves key from the cache, falling back to fn on a miss or a
// cache error. Concurrent misses for the same key share one fn call.
func findAndCache[T any](ctx context.Context, rt readThrough, key string, fn FetchFunc[T]) (T, error) {
	var zero T
	if rt.logger == nil {
		rt.logger = zap.NewNop()
	}

	var entry cachedEntry[T]
	err := rt.cache.Get(ctx, key, &entry)
	switch {
	case err == nil:
		rt.metrics.CacheHit(rt.name)
		if time.Since(entry.StoredAt) > rt.ttl/2 {
			refreshAhead(rt, key, fn)
		}
		return entry.Value, nil

	case errors.Is(err, cache.ErrMiss):
		rt.logger.Debug("cache miss", zap.String("key", key))

	default:
		rt.logger.Warn("cache get error (treating as miss)", zap.String("key", key), zap.Error(err))
	}
	rt.metrics.CacheMiss(rt.name)

	v, err, shared := rt.sf.Do(key, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		go storeEntry(rt, key, value)
		return value, nil
	})
	if err != nil {
		return zero, err
	}

	value, ok := v.(T)
	if !ok {
		rt.logger.Error("singleflight type mismatch", zap.String("key", key))
		return zero, fmt.Errorf("type mismatch for key %q", key)
	}
	if shared {
		rt.logger.Debug("singleflight shared result", zap.String("key", key))
	}
	return value, nil
}
