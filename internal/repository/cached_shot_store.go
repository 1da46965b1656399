package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/godilite/shotstats/internal/repository/models"
	"github.com/godilite/shotstats/pkg/cache"
	"github.com/godilite/shotstats/pkg/metrics"
)

// ShotSource is implemented by ScoringRepository.
type ShotSource interface {
	GetSessionShots(ctx context.Context, sessionID string) ([]models.ShotRecord, error)
}

// CachedShotStore caches shot lists per session. Recorded sessions never
// change, so entries only age out through the TTL.
type CachedShotStore struct {
	source  ShotSource
	cache   cache.Store
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewCachedShotStore(source ShotSource, store cache.Store, ttl time.Duration, logger *zap.Logger, m *metrics.Metrics) *CachedShotStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedShotStore{source: source, cache: store, ttl: ttl, logger: logger, metrics: m}
}

func (s *CachedShotStore) GetSessionShots(ctx context.Context, sessionID string) ([]models.ShotRecord, error) {
	hit := true
	fetch := cache.FindAndCache(s.cache, "shots:"+sessionID, s.ttl, s.logger, func(ctx context.Context) ([]models.ShotRecord, error) {
		hit = false
		return s.source.GetSessionShots(ctx, sessionID)
	})

	shots, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if hit {
		s.metrics.CacheHit("shots")
	} else {
		s.metrics.CacheMiss("shots")
	}
	return shots, nil
}
