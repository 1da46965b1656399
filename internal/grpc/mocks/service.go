package mocks

import (
	"context"
	"errors"

	"github.com/godilite/shotstats/internal/analysis"
	"github.com/godilite/shotstats/internal/service"
)

// MockStatsService is a func-field implementation of the handler's
// StatsService dependency.
type MockStatsService struct {
	GetDashboardStatsFunc   func(ctx context.Context, userID int64, tr service.TimeRange) (service.DashboardStats, error)
	GetTrendFunc            func(ctx context.Context, userID int64, m service.Metric, p service.Period, limit int) (service.TrendSeries, error)
	GetLeaderboardFunc      func(ctx context.Context, key service.SortKey, tr service.TimeRange, limit int) (service.Leaderboard, error)
	GetRecentSessionsFunc   func(ctx context.Context, userID int64, tr service.TimeRange, page, perPage int) (service.RecentSessionsPage, error)
	GetSessionAnalysisFunc  func(ctx context.Context, sessionID string) (service.SessionDetail, error)
	GetShotDistributionFunc func(ctx context.Context, userID int64) ([]analysis.DistributionBucket, error)
	GetScoreTrendFunc       func(ctx context.Context, userID int64) ([]service.ScorePoint, error)
}

func (m *MockStatsService) GetDashboardStats(ctx context.Context, userID int64, tr service.TimeRange) (service.DashboardStats, error) {
	if m.GetDashboardStatsFunc != nil {
		return m.GetDashboardStatsFunc(ctx, userID, tr)
	}
	return service.DashboardStats{}, errors.New("GetDashboardStatsFunc not implemented")
}

func (m *MockStatsService) GetTrend(ctx context.Context, userID int64, metric service.Metric, p service.Period, limit int) (service.TrendSeries, error) {
	if m.GetTrendFunc != nil {
		return m.GetTrendFunc(ctx, userID, metric, p, limit)
	}
	return service.TrendSeries{}, errors.New("GetTrendFunc not implemented")
}

func (m *MockStatsService) GetLeaderboard(ctx context.Context, key service.SortKey, tr service.TimeRange, limit int) (service.Leaderboard, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, key, tr, limit)
	}
	return service.Leaderboard{}, errors.New("GetLeaderboardFunc not implemented")
}

func (m *MockStatsService) GetRecentSessions(ctx context.Context, userID int64, tr service.TimeRange, page, perPage int) (service.RecentSessionsPage, error) {
	if m.GetRecentSessionsFunc != nil {
		return m.GetRecentSessionsFunc(ctx, userID, tr, page, perPage)
	}
	return service.RecentSessionsPage{}, errors.New("GetRecentSessionsFunc not implemented")
}

func (m *MockStatsService) GetSessionAnalysis(ctx context.Context, sessionID string) (service.SessionDetail, error) {
	if m.GetSessionAnalysisFunc != nil {
		return m.GetSessionAnalysisFunc(ctx, sessionID)
	}
	return service.SessionDetail{}, errors.New("GetSessionAnalysisFunc not implemented")
}

func (m *MockStatsService) GetShotDistribution(ctx context.Context, userID int64) ([]analysis.DistributionBucket, error) {
	if m.GetShotDistributionFunc != nil {
		return m.GetShotDistributionFunc(ctx, userID)
	}
	return nil, errors.New("GetShotDistributionFunc not implemented")
}

func (m *MockStatsService) GetScoreTrend(ctx context.Context, userID int64) ([]service.ScorePoint, error) {
	if m.GetScoreTrendFunc != nil {
		return m.GetScoreTrendFunc(ctx, userID)
	}
	return nil, errors.New("GetScoreTrendFunc not implemented")
}
