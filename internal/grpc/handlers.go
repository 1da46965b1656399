package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/godilite/shotstats/api/v1"
	"github.com/godilite/shotstats/internal/service"
	"github.com/godilite/shotstats/pkg/metrics"
)

const (
	defaultCacheDuration = 5 * time.Minute
	defaultGRPCTimeout   = 20 * time.Second
)

type CacheKeyType string

const (
	cacheKeyDashboard   CacheKeyType = "grpc:dashboard"
	cacheKeyLeaderboard CacheKeyType = "grpc:leaderboard"
)

type GRPCHandlers struct {
	pb.UnimplementedAnalyticsServer
	stats    StatsService
	cache    Cacher
	logger   *zap.Logger
	metrics  *metrics.Metrics
	sfGroup  singleflight.Group
	cacheTTL time.Duration
}

// NewGRPCHandlers initializes the gRPC handlers.
func NewGRPCHandlers(stats StatsService, cache Cacher, logger *zap.Logger, ttl time.Duration, m *metrics.Metrics) *GRPCHandlers {
	if stats == nil {
		panic("nil StatsService provided to NewGRPCHandlers")
	}
	if cache == nil {
		panic("nil Cacher provided to NewGRPCHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &GRPCHandlers{
		stats:    stats,
		cache:    cache,
		logger:   logger.Named("grpc-handler"),
		metrics:  m,
		cacheTTL: ttl,
	}
}

func (s *GRPCHandlers) readThrough(name string) readThrough {
	return readThrough{
		cache:   s.cache,
		sf:      &s.sfGroup,
		ttl:     s.cacheTTL,
		logger:  s.logger,
		metrics: s.metrics,
		name:    name,
	}
}

func cacheKey(prefix CacheKeyType, parts ...any) string {
	key := string(prefix)
	for _, p := range parts {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}

func validateUser(id int64) error {
	if id <= 0 {
		return status.Error(codes.InvalidArgument, "user_id must be positive")
	}
	return nil
}

func invalidArgument(err error) error {
	return status.Error(codes.InvalidArgument, err.Error())
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		return status.Error(codes.NotFound, "member not found")
	case errors.Is(err, service.ErrSessionNotFound):
		return status.Error(codes.NotFound, "session not found")
	case errors.Is(err, service.ErrNoShots):
		return status.Error(codes.NotFound, "no shots recorded for session")
	case errors.Is(err, service.ErrNotLinked):
		return status.Error(codes.FailedPrecondition, "member is not linked to a shooter")
	case errors.Is(err, service.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

func (s *GRPCHandlers) GetDashboardStats(ctx context.Context, req *pb.DashboardStatsRequest) (*pb.DashboardStatsResponse, error) {
	if err := validateUser(req.GetUserId()); err != nil {
		return nil, err
	}
	tr, err := service.ParseTimeRange(req.GetTimeRange())
	if err != nil {
		return nil, invalidArgument(err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	key := cacheKey(cacheKeyDashboard, req.GetUserId(), tr)
	stats, err := findAndCache(ctx, s.readThrough("dashboard"), key, func(fetchCtx context.Context) (service.DashboardStats, error) {
		return s.stats.GetDashboardStats(fetchCtx, req.GetUserId(), tr)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetDashboardStats", err)
	}
	return toDashboardProto(stats), nil
}

func (s *GRPCHandlers) GetTrend(ctx context.Context, req *pb.TrendRequest) (*pb.TrendResponse, error) {
	if err := validateUser(req.GetUserId()); err != nil {
		return nil, err
	}
	metric, err := service.ParseMetric(req.Metric)
	if err != nil {
		return nil, invalidArgument(err)
	}
	period, err := service.ParsePeriod(req.Period)
	if err != nil {
		return nil, invalidArgument(err)
	}
	if req.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	series, err := s.stats.GetTrend(ctx, req.GetUserId(), metric, period, int(req.Limit))
	if err != nil {
		return nil, s.handleError(ctx, "GetTrend", err)
	}
	return toTrendProto(series), nil
}

func (s *GRPCHandlers) GetLeaderboard(ctx context.Context, req *pb.LeaderboardRequest) (*pb.LeaderboardResponse, error) {
	key, err := service.ParseSortKey(req.SortBy)
	if err != nil {
		return nil, invalidArgument(err)
	}
	tr, err := service.ParseTimeRange(req.TimeRange)
	if err != nil {
		return nil, invalidArgument(err)
	}
	if req.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	ck := cacheKey(cacheKeyLeaderboard, key, tr, req.Limit)
	board, err := findAndCache(ctx, s.readThrough("leaderboard"), ck, func(fetchCtx context.Context) (service.Leaderboard, error) {
		return s.stats.GetLeaderboard(fetchCtx, key, tr, int(req.Limit))
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetLeaderboard", err)
	}
	return toLeaderboardProto(board), nil
}

func (s *GRPCHandlers) GetRecentSessions(ctx context.Context, req *pb.RecentSessionsRequest) (*pb.RecentSessionsResponse, error) {
	if err := validateUser(req.GetUserId()); err != nil {
		return nil, err
	}
	tr, err := service.ParseTimeRange(req.TimeRange)
	if err != nil {
		return nil, invalidArgument(err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	page, err := s.stats.GetRecentSessions(ctx, req.GetUserId(), tr, int(req.Page), int(req.PerPage))
	if err != nil {
		return nil, s.handleError(ctx, "GetRecentSessions", err)
	}
	return toRecentSessionsProto(page), nil
}

func (s *GRPCHandlers) GetSessionAnalysis(ctx context.Context, req *pb.SessionAnalysisRequest) (*pb.SessionAnalysisResponse, error) {
	if req.GetSessionId() == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	detail, err := s.stats.GetSessionAnalysis(ctx, req.GetSessionId())
	if err != nil {
		return nil, s.handleError(ctx, "GetSessionAnalysis", err)
	}
	return toSessionAnalysisProto(detail), nil
}

func (s *GRPCHandlers) GetShotDistribution(ctx context.Context, req *pb.ShotDistributionRequest) (*pb.ShotDistributionResponse, error) {
	if err := validateUser(req.GetUserId()); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	buckets, err := s.stats.GetShotDistribution(ctx, req.GetUserId())
	if err != nil {
		return nil, s.handleError(ctx, "GetShotDistribution", err)
	}
	return &pb.ShotDistributionResponse{Buckets: toDistributionProto(buckets)}, nil
}

func (s *GRPCHandlers) GetScoreTrend(ctx context.Context, req *pb.ScoreTrendRequest) (*pb.ScoreTrendResponse, error) {
	if err := validateUser(req.GetUserId()); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	points, err := s.stats.GetScoreTrend(ctx, req.GetUserId())
	if err != nil {
		return nil, s.handleError(ctx, "GetScoreTrend", err)
	}

	out := make([]*pb.ScorePoint, len(points))
	for i, p := range points {
		out[i] = &pb.ScorePoint{Date: p.Date, Score: p.Score}
	}
	return &pb.ScoreTrendResponse{Points: out}, nil
}
