package grpc

import (
	"context"
	"time"

	"github.com/godilite/shotstats/internal/analysis"
	"github.com/godilite/shotstats/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type StatsService interface {
	GetDashboardStats(ctx context.Context, userID int64, tr service.TimeRange) (service.DashboardStats, error)
	GetTrend(ctx context.Context, userID int64, m service.Metric, p service.Period, limit int) (service.TrendSeries, error)
	GetLeaderboard(ctx context.Context, key service.SortKey, tr service.TimeRange, limit int) (service.Leaderboard, error)
	GetRecentSessions(ctx context.Context, userID int64, tr service.TimeRange, page, perPage int) (service.RecentSessionsPage, error)
	GetSessionAnalysis(ctx context.Context, sessionID string) (service.SessionDetail, error)
	GetShotDistribution(ctx context.Context, userID int64) ([]analysis.DistributionBucket, error)
	GetScoreTrend(ctx context.Context, userID int64) ([]service.ScorePoint, error)
}
